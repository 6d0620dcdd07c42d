package orderControllers

import "github.com/sellerhub/marketplace-api/models"

// ViewerContext is the caller's role relative to one order.
type ViewerContext string

const (
	ViewerBuyer          ViewerContext = "buyer"
	ViewerSeller         ViewerContext = "seller"
	ViewerBuyerAndSeller ViewerContext = "buyer_and_seller"
)

// Actions a viewer may take on an order.
const (
	ActionAddRemark    = "addRemark"
	ActionAccept       = "accept"
	ActionUpdateStatus = "updateStatus"
)

// ResolveViewerContext classifies the viewer against an order and computes
// the actions open to them. An empty context means no access. addRemark is
// allowed for any matching role; accept only for a seller while the order is
// Received; updateStatus for any seller regardless of status.
func ResolveViewerContext(order *models.Order, viewerID string) (ViewerContext, []string) {
	if viewerID == "" {
		return "", nil
	}

	isBuyer := order.BuyerID == viewerID
	isSeller := false
	for _, item := range order.Items {
		if item.SellerID == viewerID {
			isSeller = true
			break
		}
	}

	var viewerContext ViewerContext
	switch {
	case isBuyer && isSeller:
		viewerContext = ViewerBuyerAndSeller
	case isBuyer:
		viewerContext = ViewerBuyer
	case isSeller:
		viewerContext = ViewerSeller
	default:
		return "", nil
	}

	allowedActions := []string{ActionAddRemark}
	if isSeller {
		if order.Status == models.OrderStatusReceived {
			allowedActions = append(allowedActions, ActionAccept)
		}
		allowedActions = append(allowedActions, ActionUpdateStatus)
	}

	return viewerContext, allowedActions
}

// SellerIDs returns the distinct sellers on an order, in item order.
func SellerIDs(order *models.Order) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, item := range order.Items {
		if !seen[item.SellerID] {
			seen[item.SellerID] = true
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}
