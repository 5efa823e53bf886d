package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Customer{},
		&Category{},
		&Notebook{},
		&Smartphone{},
		&SmartTV{},
		&Headphones{},
		&Cart{},
		&CartItem{},
		&Order{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) Category {
	t.Helper()
	category := Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedNotebook(t *testing.T, db *gorm.DB, categoryID uint, slug string, price float64) Notebook {
	t.Helper()
	notebook := Notebook{
		ProductBase: ProductBase{
			CategoryID:  categoryID,
			Slug:        slug,
			Title:       "Notebook " + slug,
			Description: "A notebook",
			Price:       price,
		},
	}
	require.NoError(t, db.Create(&notebook).Error)
	return notebook
}

func seedHeadphones(t *testing.T, db *gorm.DB, categoryID uint, slug string, price float64) Headphones {
	t.Helper()
	headphones := Headphones{
		ProductBase: ProductBase{
			CategoryID:  categoryID,
			Slug:        slug,
			Title:       "Headphones " + slug,
			Description: "Headphones",
			Price:       price,
		},
		ConnectionType: ConnectionTypeWire,
		Fastening:      FasteningEarBuds,
	}
	require.NoError(t, db.Create(&headphones).Error)
	return headphones
}

func seedCustomerWithCart(t *testing.T, db *gorm.DB) (*Customer, *Cart) {
	t.Helper()
	user := User{Username: "shopper", Email: "shopper@example.com", Role: "user", AccountActivated: true}
	require.NoError(t, db.Create(&user).Error)

	customer := Customer{UserID: user.ID, Phone: "+100000000", Address: "1 Main St"}
	require.NoError(t, db.Create(&customer).Error)

	cart, err := OpenCartForCustomer(db, customer.ID)
	require.NoError(t, err)
	return &customer, cart
}

// reload pulls the cart row back from the database so assertions see
// persisted values, not in-memory ones.
func reloadCart(t *testing.T, db *gorm.DB, cartID uint) Cart {
	t.Helper()
	var cart Cart
	require.NoError(t, db.First(&cart, cartID).Error)
	return cart
}
