package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusCompleted  = "completed"

	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

type Order struct {
	gorm.Model
	CustomerID   uint           `json:"customerId"`
	CartID       uint           `json:"cartId"`
	FirstName    string         `json:"firstName" gorm:"size:255"`
	LastName     string         `json:"lastName" gorm:"size:255"`
	Phone        string         `json:"phone" gorm:"size:20"`
	Address      string         `json:"address" gorm:"size:1024"`
	Status       string         `json:"status" gorm:"size:100;default:new"`
	OrderType    string         `json:"orderType" gorm:"size:100;default:pickup"`
	Comment      string         `json:"comment" gorm:"size:1000"`
	DeliveryDate datatypes.Date `json:"deliveryDate"`
}

var statusRank = map[string]int{
	StatusNew:        0,
	StatusProcessing: 1,
	StatusReady:      2,
	StatusCompleted:  3,
}

// CanTransition reports whether an order may move from one status to
// another. Transitions are monotonic single steps; there is no way
// back.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	toRank, ok2 := statusRank[to]
	return ok && ok2 && toRank == fromRank+1
}

// ShippingDetails is the checkout form payload.
type ShippingDetails struct {
	FirstName    string    `form:"first_name" json:"firstName" binding:"required"`
	LastName     string    `form:"last_name" json:"lastName" binding:"required"`
	Phone        string    `form:"phone" json:"phone" binding:"required"`
	Address      string    `form:"address" json:"address" binding:"required"`
	OrderType    string    `form:"order_type" json:"orderType" binding:"required,oneof=pickup delivery"`
	DeliveryDate time.Time `form:"delivery_date" json:"deliveryDate" time_format:"2006-01-02" binding:"required"`
	Comment      string    `form:"comment" json:"comment" binding:"max=1000"`
}

// PlaceOrder freezes the cart and the shipping details into an order.
// Order creation, the cart's in_order flip and the append to the
// customer's order list commit as one transaction.
func PlaceOrder(db *gorm.DB, customer *Customer, cart *Cart, details ShippingDetails) (*Order, error) {
	if cart.InOrder {
		return nil, ErrValidation
	}

	order := Order{
		CustomerID:   customer.ID,
		CartID:       cart.ID,
		FirstName:    details.FirstName,
		LastName:     details.LastName,
		Phone:        details.Phone,
		Address:      details.Address,
		Status:       StatusNew,
		OrderType:    details.OrderType,
		Comment:      details.Comment,
		DeliveryDate: datatypes.Date(details.DeliveryDate),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		cart.InOrder = true
		if err := tx.Model(cart).Update("in_order", true).Error; err != nil {
			return err
		}
		return tx.Model(customer).Association("Orders").Append(&order)
	})
	if err != nil {
		cart.InOrder = false
		return nil, err
	}
	return &order, nil
}
