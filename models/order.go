package models

import "time"

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses (kitchen flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting acceptance
	OrderStatusAccepted  OrderStatus = "accepted"  // Accepted by the kitchen
	OrderStatusPreparing OrderStatus = "preparing" // Being cooked
	OrderStatusReady     OrderStatus = "ready"     // Ready for pickup/serving
	OrderStatusCompleted OrderStatus = "completed" // Handed over to the customer
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before completion

	// Payment methods
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

type Order struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	CustomerName  string        `gorm:"not null" json:"customerName"`
	Contact       string        `json:"contact"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   float64       `gorm:"not null" json:"totalAmount"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(10);default:'cash'" json:"paymentMethod"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Notes         string        `json:"notes"`
	Version       int           `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type OrderItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID  string  `gorm:"index" json:"-"`
	Category string  `gorm:"not null" json:"category"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"` // unit price
	Special  string  `json:"special"`
}
