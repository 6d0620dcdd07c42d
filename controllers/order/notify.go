package orderControllers

import (
	"fmt"

	notificationControllers "github.com/sellerhub/marketplace-api/controllers/notification"
	"github.com/sellerhub/marketplace-api/models"
	"gorm.io/gorm"
)

// truncateRemark keeps notification messages short; the full remark lives on
// the order timeline.
func truncateRemark(remark string) string {
	if len(remark) > 180 {
		return remark[:177] + "..."
	}
	return remark
}

// NotifyOrderCreated tells the buyer and every distinct seller about a fresh
// order. Best effort, runs after the checkout transaction committed.
func NotifyOrderCreated(db *gorm.DB, order *models.Order) {
	inputs := []notificationControllers.Input{{
		UserID:   order.BuyerID,
		Type:     models.NotificationTypeOrderStatus,
		Title:    "Order placed successfully",
		Message:  fmt.Sprintf("Your order %s has been placed.", order.ID),
		OrderID:  order.ID,
		Metadata: map[string]interface{}{"status": order.Status},
	}}
	for _, sellerID := range SellerIDs(order) {
		inputs = append(inputs, notificationControllers.Input{
			UserID:   sellerID,
			Type:     models.NotificationTypeOrderStatus,
			Title:    "New order received",
			Message:  fmt.Sprintf("Order %s includes one or more of your products.", order.ID),
			OrderID:  order.ID,
			Metadata: map[string]interface{}{"status": order.Status},
		})
	}
	notificationControllers.DispatchBestEffort(db, inputs)
}

// NotifyStatusChange tells everyone on the order except the actor.
func NotifyStatusChange(db *gorm.DB, order *models.Order, actorID string) {
	var inputs []notificationControllers.Input
	for _, userID := range recipientsExcept(order, actorID) {
		inputs = append(inputs, notificationControllers.Input{
			UserID:   userID,
			Type:     models.NotificationTypeOrderStatus,
			Title:    "Order status updated",
			Message:  fmt.Sprintf("Order %s is now %s.", order.ID, order.Status),
			OrderID:  order.ID,
			Metadata: map[string]interface{}{"status": order.Status, "actor_id": actorID},
		})
	}
	notificationControllers.DispatchBestEffort(db, inputs)
}

// NotifyRemark tells everyone on the order except the remark's author.
func NotifyRemark(db *gorm.DB, order *models.Order, authorID, remark string) {
	var inputs []notificationControllers.Input
	for _, userID := range recipientsExcept(order, authorID) {
		inputs = append(inputs, notificationControllers.Input{
			UserID:   userID,
			Type:     models.NotificationTypeOrderActivity,
			Title:    "New order remark",
			Message:  fmt.Sprintf("Order %s has a new remark: %q", order.ID, truncateRemark(remark)),
			OrderID:  order.ID,
			Metadata: map[string]interface{}{"author_id": authorID},
		})
	}
	notificationControllers.DispatchBestEffort(db, inputs)
}

// recipientsExcept is the buyer plus distinct sellers, minus the actor.
func recipientsExcept(order *models.Order, actorID string) []string {
	var recipients []string
	if order.BuyerID != "" && order.BuyerID != actorID {
		recipients = append(recipients, order.BuyerID)
	}
	for _, sellerID := range SellerIDs(order) {
		if sellerID != actorID && sellerID != order.BuyerID {
			recipients = append(recipients, sellerID)
		}
	}
	return recipients
}
