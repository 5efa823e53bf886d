package models

import (
	"errors"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Fullname               string `json:"fullname"`
	Username               string `json:"username" gorm:"uniqueIndex;size:100"`
	Email                  string `json:"email" gorm:"uniqueIndex;size:250"`
	Password               string `json:"password"`
	Role                   string `json:"role"`
	AccountActivated       bool   `json:"accountActivated"`
	AccountActivationToken string `json:"-"`
	PasswordResetToken     string `json:"-"`
}

type LoginData struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Customer is the shopper identity behind an authenticated user. Its
// order list grows at checkout and is never rewritten.
type Customer struct {
	gorm.Model
	UserID  uint    `json:"userId" gorm:"uniqueIndex"`
	Phone   string  `json:"phone" gorm:"size:20"`
	Address string  `json:"address" gorm:"size:1024"`
	Orders  []Order `json:"orders" gorm:"many2many:customer_orders"`
}

func CustomerByUserID(db *gorm.DB, userID uint) (*Customer, error) {
	var customer Customer
	if err := db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}
