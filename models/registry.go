package models

import (
	"errors"

	"gorm.io/gorm"
)

// The four product variants live in disjoint tables, so any reference
// to "a product" needs a (type tag, id) or (type tag, slug) pair. The
// registry maps the closed set of tags to their concrete entities.

const (
	TypeNotebook   = "notebook"
	TypeSmartphone = "smartphone"
	TypeSmartTV    = "smarttv"
	TypeHeadphones = "headphones"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// ProductRef is a variant-independent snapshot of one product, enough
// for cart lines, listings and URLs.
type ProductRef struct {
	ProductType string  `json:"productType"`
	ID          uint    `json:"id"`
	CategoryID  uint    `json:"categoryId"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

func (r ProductRef) URL() string {
	return ProductURL(r.ProductType, r.Slug)
}

func ProductURL(productType, slug string) string {
	return "/products/" + productType + "/" + slug + "/"
}

// CatalogProduct is implemented by all four product variants.
type CatalogProduct interface {
	Ref() ProductRef
	Specs() map[string]string
}

var productTypes = map[string]func() CatalogProduct{
	TypeNotebook:   func() CatalogProduct { return &Notebook{} },
	TypeSmartphone: func() CatalogProduct { return &Smartphone{} },
	TypeSmartTV:    func() CatalogProduct { return &SmartTV{} },
	TypeHeadphones: func() CatalogProduct { return &Headphones{} },
}

// ProductTypes returns the tag set in display order.
func ProductTypes() []string {
	return []string{TypeNotebook, TypeSmartphone, TypeSmartTV, TypeHeadphones}
}

// NewProduct returns an empty entity for the given tag, or ErrNotFound
// for a tag outside the closed set.
func NewProduct(productType string) (CatalogProduct, error) {
	factory, ok := productTypes[productType]
	if !ok {
		return nil, ErrNotFound
	}
	return factory(), nil
}

// ProductBySlug loads the concrete variant entity for a (tag, slug) pair.
func ProductBySlug(db *gorm.DB, productType, slug string) (CatalogProduct, error) {
	product, err := NewProduct(productType)
	if err != nil {
		return nil, err
	}
	if err := db.Where("slug = ?", slug).First(product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// ResolveBySlug returns the snapshot for a (tag, slug) pair.
func ResolveBySlug(db *gorm.DB, productType, slug string) (ProductRef, error) {
	product, err := ProductBySlug(db, productType, slug)
	if err != nil {
		return ProductRef{}, err
	}
	return product.Ref(), nil
}

// ResolveByID returns the snapshot for a (tag, id) pair.
func ResolveByID(db *gorm.DB, productType string, productID uint) (ProductRef, error) {
	product, err := NewProduct(productType)
	if err != nil {
		return ProductRef{}, err
	}
	if err := db.First(product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductRef{}, ErrNotFound
		}
		return ProductRef{}, err
	}
	return product.Ref(), nil
}

// ProductsByCategory gathers products from every variant table that
// belong to the given category.
func ProductsByCategory(db *gorm.DB, categoryID uint) ([]ProductRef, error) {
	var refs []ProductRef
	for _, productType := range ProductTypes() {
		typeRefs, err := refsForType(db, productType, func(q *gorm.DB) *gorm.DB {
			return q.Where("category_id = ?", categoryID)
		})
		if err != nil {
			return nil, err
		}
		refs = append(refs, typeRefs...)
	}
	return refs, nil
}

// LatestProducts returns the newest perType products of every variant,
// with the withRespectTo variant's products sorted first.
func LatestProducts(db *gorm.DB, perType int, withRespectTo string) ([]ProductRef, error) {
	var refs []ProductRef
	ordered := ProductTypes()
	if _, ok := productTypes[withRespectTo]; ok {
		ordered = []string{withRespectTo}
		for _, productType := range ProductTypes() {
			if productType != withRespectTo {
				ordered = append(ordered, productType)
			}
		}
	}
	for _, productType := range ordered {
		typeRefs, err := refsForType(db, productType, func(q *gorm.DB) *gorm.DB {
			return q.Order("id DESC").Limit(perType)
		})
		if err != nil {
			return nil, err
		}
		refs = append(refs, typeRefs...)
	}
	return refs, nil
}

func refsForType(db *gorm.DB, productType string, scope func(*gorm.DB) *gorm.DB) ([]ProductRef, error) {
	var refs []ProductRef
	switch productType {
	case TypeNotebook:
		var rows []Notebook
		if err := scope(db).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			refs = append(refs, rows[i].Ref())
		}
	case TypeSmartphone:
		var rows []Smartphone
		if err := scope(db).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			refs = append(refs, rows[i].Ref())
		}
	case TypeSmartTV:
		var rows []SmartTV
		if err := scope(db).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			refs = append(refs, rows[i].Ref())
		}
	case TypeHeadphones:
		var rows []Headphones
		if err := scope(db).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			refs = append(refs, rows[i].Ref())
		}
	default:
		return nil, ErrNotFound
	}
	return refs, nil
}

// SetProductImage stores the uploaded image URL on the concrete variant.
func SetProductImage(db *gorm.DB, productType, slug, imageURL string) error {
	product, err := NewProduct(productType)
	if err != nil {
		return err
	}
	result := db.Model(product).Where("slug = ?", slug).Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
