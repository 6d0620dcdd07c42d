package orderControllers

import (
	"time"

	"github.com/sellerhub/marketplace-api/models"
)

type UserPreview struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
}

type ItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	SellerID  string          `json:"seller_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"unit_price"`
	Subtotal  float64         `json:"subtotal"`
	Product   *models.Product `json:"product,omitempty"`
	Seller    *UserPreview    `json:"seller,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ActivityResponse struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"order_id"`
	AuthorID  string       `json:"author_id"`
	Message   string       `json:"message"`
	Author    *UserPreview `json:"author,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type OrderResponse struct {
	ID             string             `json:"id"`
	BuyerID        string             `json:"buyer_id"`
	Status         models.OrderStatus `json:"status"`
	TotalAmount    float64            `json:"total_amount"`
	BuyerNote      string             `json:"buyer_note"`
	Items          []ItemResponse     `json:"items"`
	Activities     []ActivityResponse `json:"activities"`
	ViewerContext  ViewerContext      `json:"viewer_context,omitempty"`
	AllowedActions []string           `json:"allowed_actions,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func toUserPreview(u *models.User) *UserPreview {
	if u == nil {
		return nil
	}
	return &UserPreview{ID: u.ID, Name: u.Name, ProfileURL: u.ProfileURL}
}

// ToOrderResponse reshapes an order for the given viewer, attaching their
// context and allowed actions.
func ToOrderResponse(order *models.Order, viewerID string) *OrderResponse {
	resp := &OrderResponse{
		ID:          order.ID,
		BuyerID:     order.BuyerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		BuyerNote:   order.BuyerNote,
		Items:       make([]ItemResponse, 0, len(order.Items)),
		Activities:  make([]ActivityResponse, 0, len(order.Activities)),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
			Product:   item.Product,
			Seller:    toUserPreview(item.Seller),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}

	for _, activity := range order.Activities {
		resp.Activities = append(resp.Activities, ActivityResponse{
			ID:        activity.ID,
			OrderID:   activity.OrderID,
			AuthorID:  activity.AuthorID,
			Message:   activity.Message,
			Author:    toUserPreview(activity.Author),
			CreatedAt: activity.CreatedAt,
		})
	}

	resp.ViewerContext, resp.AllowedActions = ResolveViewerContext(order, viewerID)
	return resp
}
