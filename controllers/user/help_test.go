package userControllers

import (
	"testing"

	"github.com/sellerhub/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHelpRequest(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "help@example.com")

	ticket, err := CreateHelpRequest(db, user.ID, CreateHelpRequestRequest{
		Subject: "Payment not reflecting",
		Message: "Paid yesterday, order still shows pending.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, models.HelpRequestStatusOpen, ticket.Status)
}

func TestListHelpRequestsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "help@example.com")
	other := createUser(t, db, "other@example.com")

	_, err := CreateHelpRequest(db, user.ID, CreateHelpRequestRequest{Subject: "a", Message: "m"})
	require.NoError(t, err)
	_, err = CreateHelpRequest(db, other.ID, CreateHelpRequestRequest{Subject: "b", Message: "m"})
	require.NoError(t, err)

	tickets, err := ListHelpRequests(db, user.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "a", tickets[0].Subject)
}
