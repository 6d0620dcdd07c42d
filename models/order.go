package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "Received"  // Order placed, awaiting seller action
	OrderStatusAccepted  OrderStatus = "Accepted"  // Confirmed by a seller
	OrderStatusShipped   OrderStatus = "Shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "Delivered" // Buyer received the items
	OrderStatusCancelled OrderStatus = "Cancelled" // Called off by a seller
)

type Order struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	BuyerID     string          `gorm:"index;not null" json:"buyer_id"`
	Status      OrderStatus     `gorm:"type:VARCHAR(20);default:'Received'" json:"status"`
	TotalAmount float64         `json:"total_amount"` // fixed at checkout, never recomputed
	BuyerNote   string          `json:"buyer_note"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Activities  []OrderActivity `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"activities"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"index;not null" json:"order_id"`
	ProductID string    `gorm:"not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SellerID  string    `gorm:"index;not null" json:"seller_id"`
	Seller    *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Subtotal  float64   `gorm:"not null" json:"subtotal"` // quantity * unit_price, snapshotted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderActivity is an append-only timeline entry on an order.
type OrderActivity struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"index;not null" json:"order_id"`
	AuthorID  string    `gorm:"not null" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *OrderActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
