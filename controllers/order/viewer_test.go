package orderControllers

import (
	"testing"

	"github.com/sellerhub/marketplace-api/models"
	"github.com/stretchr/testify/assert"
)

func orderWith(buyerID string, status models.OrderStatus, sellerIDs ...string) *models.Order {
	order := &models.Order{ID: "order-1", BuyerID: buyerID, Status: status}
	for _, sellerID := range sellerIDs {
		order.Items = append(order.Items, models.OrderItem{SellerID: sellerID})
	}
	return order
}

func TestResolveViewerContext(t *testing.T) {
	tests := []struct {
		name        string
		order       *models.Order
		viewerID    string
		wantContext ViewerContext
		wantActions []string
	}{
		{
			name:        "buyer only",
			order:       orderWith("buyer", models.OrderStatusReceived, "seller"),
			viewerID:    "buyer",
			wantContext: ViewerBuyer,
			wantActions: []string{ActionAddRemark},
		},
		{
			name:        "seller on received order can accept",
			order:       orderWith("buyer", models.OrderStatusReceived, "seller"),
			viewerID:    "seller",
			wantContext: ViewerSeller,
			wantActions: []string{ActionAddRemark, ActionAccept, ActionUpdateStatus},
		},
		{
			name:        "seller after accept loses the accept action",
			order:       orderWith("buyer", models.OrderStatusAccepted, "seller"),
			viewerID:    "seller",
			wantContext: ViewerSeller,
			wantActions: []string{ActionAddRemark, ActionUpdateStatus},
		},
		{
			name:        "seller on shipped order keeps updateStatus",
			order:       orderWith("buyer", models.OrderStatusShipped, "seller"),
			viewerID:    "seller",
			wantContext: ViewerSeller,
			wantActions: []string{ActionAddRemark, ActionUpdateStatus},
		},
		{
			name:        "buyer who also sells on the order",
			order:       orderWith("both", models.OrderStatusReceived, "both", "other"),
			viewerID:    "both",
			wantContext: ViewerBuyerAndSeller,
			wantActions: []string{ActionAddRemark, ActionAccept, ActionUpdateStatus},
		},
		{
			name:        "buyer and seller on a delivered order",
			order:       orderWith("both", models.OrderStatusDelivered, "both"),
			viewerID:    "both",
			wantContext: ViewerBuyerAndSeller,
			wantActions: []string{ActionAddRemark, ActionUpdateStatus},
		},
		{
			name:        "stranger has no access",
			order:       orderWith("buyer", models.OrderStatusReceived, "seller"),
			viewerID:    "stranger",
			wantContext: "",
			wantActions: nil,
		},
		{
			name:        "empty viewer has no access",
			order:       orderWith("buyer", models.OrderStatusReceived, "seller"),
			viewerID:    "",
			wantContext: "",
			wantActions: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotContext, gotActions := ResolveViewerContext(tt.order, tt.viewerID)
			assert.Equal(t, tt.wantContext, gotContext)
			assert.Equal(t, tt.wantActions, gotActions)
		})
	}
}

func TestSellerIDsDistinct(t *testing.T) {
	order := orderWith("buyer", models.OrderStatusReceived, "a", "b", "a", "c", "b")
	assert.Equal(t, []string{"a", "b", "c"}, SellerIDs(order))
}

func TestTruncateRemark(t *testing.T) {
	short := "fits as is"
	assert.Equal(t, short, truncateRemark(short))

	long := ""
	for i := 0; i < 200; i++ {
		long += "a"
	}
	got := truncateRemark(long)
	assert.Len(t, got, 180)
	assert.Equal(t, long[:177]+"...", got)
}

func TestRecipientsExcept(t *testing.T) {
	order := orderWith("buyer", models.OrderStatusReceived, "sellerA", "sellerB")

	assert.Equal(t, []string{"sellerA", "sellerB"}, recipientsExcept(order, "buyer"))
	assert.Equal(t, []string{"buyer", "sellerB"}, recipientsExcept(order, "sellerA"))
	assert.Equal(t, []string{"buyer", "sellerA", "sellerB"}, recipientsExcept(order, "outsider"))

	// A buyer who also sells on the order shows up once, never twice
	mixed := orderWith("both", models.OrderStatusReceived, "both", "other")
	assert.Equal(t, []string{"other"}, recipientsExcept(mixed, "both"))
	assert.Equal(t, []string{"both"}, recipientsExcept(mixed, "other"))
}
