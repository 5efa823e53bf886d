package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shippingDetails() ShippingDetails {
	return ShippingDetails{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "+15550100",
		Address:      "12 Analytical Lane",
		OrderType:    OrderTypeDelivery,
		DeliveryDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Comment:      "Leave at the door",
	}
}

func TestPlaceOrder(t *testing.T) {
	db := testDB(t)
	category := seedCategory(t, db, "Notebooks", "notebooks")
	notebook := seedNotebook(t, db, category.ID, "orderbook", 1000)
	customer, cart := seedCustomerWithCart(t, db)

	_, _, err := AddCartItem(db, cart, TypeNotebook, notebook.ID)
	require.NoError(t, err)

	order, err := PlaceOrder(db, customer, cart, shippingDetails())
	require.NoError(t, err)

	assert.Equal(t, StatusNew, order.Status)
	assert.Equal(t, OrderTypeDelivery, order.OrderType)
	assert.Equal(t, "Ada", order.FirstName)
	assert.Equal(t, cart.ID, order.CartID)
	assert.Equal(t, customer.ID, order.CustomerID)

	got := reloadCart(t, db, cart.ID)
	assert.True(t, got.InOrder)

	var linked Customer
	require.NoError(t, db.Preload("Orders").First(&linked, customer.ID).Error)
	require.Len(t, linked.Orders, 1)
	assert.Equal(t, order.ID, linked.Orders[0].ID)
}

func TestPlaceOrderIsAtomic(t *testing.T) {
	db := testDB(t)
	category := seedCategory(t, db, "Notebooks", "notebooks")
	notebook := seedNotebook(t, db, category.ID, "atombook", 1000)
	customer, cart := seedCustomerWithCart(t, db)

	_, _, err := AddCartItem(db, cart, TypeNotebook, notebook.ID)
	require.NoError(t, err)

	// Break the last write of the sequence: with the join table gone the
	// order-list append fails after the order row and the cart flag were
	// already written inside the transaction.
	require.NoError(t, db.Migrator().DropTable("customer_orders"))

	_, err = PlaceOrder(db, customer, cart, shippingDetails())
	require.Error(t, err)

	var orderCount int64
	require.NoError(t, db.Model(&Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)

	got := reloadCart(t, db, cart.ID)
	assert.False(t, got.InOrder)
}

func TestPlaceOrderRejectsClosedCart(t *testing.T) {
	db := testDB(t)
	customer, cart := seedCustomerWithCart(t, db)

	cart.InOrder = true
	require.NoError(t, db.Model(cart).Update("in_order", true).Error)

	_, err := PlaceOrder(db, customer, cart, shippingDetails())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusNew, StatusProcessing, true},
		{StatusProcessing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		{StatusNew, StatusReady, false},
		{StatusNew, StatusCompleted, false},
		{StatusProcessing, StatusNew, false},
		{StatusCompleted, StatusReady, false},
		{StatusCompleted, StatusCompleted, false},
		{"unknown", StatusProcessing, false},
		{StatusNew, "unknown", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
