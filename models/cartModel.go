package models

import (
	"errors"

	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	CustomerID       *uint      `json:"customerId"`
	Items            []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalProducts    uint       `json:"totalProducts"`
	FinalPrice       float64    `json:"finalPrice" gorm:"type:decimal(9,2);default:0"`
	InOrder          bool       `json:"inOrder"`
	ForAnonymousUser bool       `json:"forAnonymousUser"`
}

// CartItem points into one of the four product tables via its
// (ProductType, ProductID) pair. FinalPrice caches
// quantity x product price and is recomputed on every mutation.
type CartItem struct {
	gorm.Model
	CustomerID  *uint   `json:"customerId"`
	CartID      uint    `json:"cartId" gorm:"uniqueIndex:idx_cart_line"`
	ProductType string  `json:"productType" gorm:"size:100;uniqueIndex:idx_cart_line"`
	ProductID   uint    `json:"productId" gorm:"uniqueIndex:idx_cart_line"`
	Quantity    int     `json:"quantity" gorm:"default:1"`
	FinalPrice  float64 `json:"finalPrice" gorm:"type:decimal(9,2);default:0"`
}

// OpenCartForCustomer returns the customer's cart that is not yet tied
// to an order, creating one if needed.
func OpenCartForCustomer(db *gorm.DB, customerID uint) (*Cart, error) {
	var cart Cart
	err := db.Where("customer_id = ? AND in_order = ?", customerID, false).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = Cart{CustomerID: &customerID}
		err = db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AnonymousCart loads the session's anonymous cart by id, creating a
// fresh one when the id is zero or stale.
func AnonymousCart(db *gorm.DB, cartID uint) (*Cart, error) {
	if cartID != 0 {
		var cart Cart
		err := db.Where("id = ? AND for_anonymous_user = ? AND in_order = ?", cartID, true, false).First(&cart).Error
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	cart := Cart{ForAnonymousUser: true}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func findCartItem(tx *gorm.DB, cart *Cart, productType string, productID uint) (*CartItem, error) {
	var item CartItem
	query := tx.Where("cart_id = ? AND product_type = ? AND product_id = ?", cart.ID, productType, productID)
	if cart.CustomerID != nil {
		query = query.Where("customer_id = ?", *cart.CustomerID)
	}
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddCartItem increments the line for (cart, productType, productID) by
// one, creating it with quantity 1 when absent. The mutation and the
// cart recalculation commit together or not at all. Returns the line
// and whether it was newly created.
func AddCartItem(db *gorm.DB, cart *Cart, productType string, productID uint) (*CartItem, bool, error) {
	var item *CartItem
	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		ref, err := ResolveByID(tx, productType, productID)
		if err != nil {
			return err
		}

		item, err = findCartItem(tx, cart, productType, productID)
		switch {
		case err == nil:
			item.Quantity++
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &CartItem{
				CustomerID:  cart.CustomerID,
				CartID:      cart.ID,
				ProductType: productType,
				ProductID:   productID,
				Quantity:    1,
			}
			created = true
		default:
			return err
		}

		item.FinalPrice = float64(item.Quantity) * ref.Price
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return Recalculate(tx, cart)
	})
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

// SetCartItemQuantity sets the line's quantity and recomputes its
// cached price. Quantities below one are rejected; removing a line goes
// through RemoveCartItem.
func SetCartItemQuantity(db *gorm.DB, cart *Cart, productType string, productID uint, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrValidation
	}
	var item *CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		ref, err := ResolveByID(tx, productType, productID)
		if err != nil {
			return err
		}

		item, err = findCartItem(tx, cart, productType, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		item.Quantity = quantity
		item.FinalPrice = float64(quantity) * ref.Price
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return Recalculate(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveCartItem deletes the line and recalculates the cart in the same
// transaction. The delete is a hard delete: a soft-deleted row would
// keep occupying the (cart, product_type, product_id) unique index and
// block the product from being re-added.
func RemoveCartItem(db *gorm.DB, cart *Cart, productType string, productID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		item, err := findCartItem(tx, cart, productType, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Unscoped().Delete(item).Error; err != nil {
			return err
		}
		return Recalculate(tx, cart)
	})
}

// Recalculate derives the cart's aggregate price and item count from
// its current lines and writes them back. An empty cart gets explicit
// zeros.
func Recalculate(db *gorm.DB, cart *Cart) error {
	var totals struct {
		Price    float64
		Quantity int64
	}
	err := db.Model(&CartItem{}).
		Select("COALESCE(SUM(final_price), 0) AS price, COALESCE(SUM(quantity), 0) AS quantity").
		Where("cart_id = ?", cart.ID).
		Scan(&totals).Error
	if err != nil {
		return err
	}

	cart.FinalPrice = totals.Price
	cart.TotalProducts = uint(totals.Quantity)
	return db.Model(cart).Updates(map[string]any{
		"final_price":    cart.FinalPrice,
		"total_products": cart.TotalProducts,
	}).Error
}

// CartLineView is a cart line joined with its resolved product, for
// rendering.
type CartLineView struct {
	CartItem
	Product ProductRef `json:"product"`
}

// CartLines loads the cart's lines with each polymorphic reference
// resolved to its product snapshot.
func CartLines(db *gorm.DB, cart *Cart) ([]CartLineView, error) {
	var items []CartItem
	if err := db.Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLineView, 0, len(items))
	for _, item := range items {
		ref, err := ResolveByID(db, item.ProductType, item.ProductID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		lines = append(lines, CartLineView{CartItem: item, Product: ref})
	}
	return lines, nil
}
