package models

import (
	"errors"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:250" binding:"required"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:250" binding:"required"`
}

func (c *Category) URL() string {
	return "/category/" + c.Slug + "/"
}

// CountConfig maps a category name to the product type whose table
// supplies that category's sidebar count. Passed in explicitly so the
// name coupling stays visible at the call site.
type CountConfig map[string]string

func DefaultCountConfig() CountConfig {
	return CountConfig{
		"Notebooks":   TypeNotebook,
		"Smartphones": TypeSmartphone,
		"Smart TVs":   TypeSmartTV,
		"Headphones":  TypeHeadphones,
	}
}

type CategoryCount struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

// CategoryCounts returns every category with its browsing URL and the
// product count contributed by the variant the config names for it.
// Categories absent from the config get a zero count.
func CategoryCounts(db *gorm.DB, cfg CountConfig) ([]CategoryCount, error) {
	var categories []Category
	if err := db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	counts := make([]CategoryCount, 0, len(categories))
	for i := range categories {
		category := &categories[i]
		entry := CategoryCount{Name: category.Name, URL: category.URL()}
		if productType, ok := cfg[category.Name]; ok {
			product, err := NewProduct(productType)
			if err != nil {
				return nil, err
			}
			if err := db.Model(product).Where("category_id = ?", category.ID).Count(&entry.Count).Error; err != nil {
				return nil, err
			}
		}
		counts = append(counts, entry)
	}
	return counts, nil
}

func CategoryBySlug(db *gorm.DB, slug string) (*Category, error) {
	var category Category
	if err := db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}
