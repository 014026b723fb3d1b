package product

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrMissingName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must not be negative")
)

const (
	TagFeatured = "featured"
	TagPopular  = "popular"
	TagNew      = "new"

	defaultCategory = "General"
)

var tagRotation = []string{TagFeatured, TagPopular, TagNew}

// Product is the catalog shape shown to shoppers.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Description string  `json:"description"`
	Tag         string  `json:"tag"`
}

// Record is a product as the backend stores it.
type Record struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
}

// FromRecord maps the i-th backend record onto the catalog shape. Records
// without an image get a placeholder, and tags rotate featured, popular, new.
func FromRecord(i int, r Record) Product {
	img := r.Image
	if img == "" {
		img = fmt.Sprintf("https://picsum.photos/600/400?random=%d", i+200)
	}
	return Product{
		ID:          r.ID,
		Title:       r.Name,
		Image:       img,
		Category:    defaultCategory,
		Price:       r.Price,
		Description: r.Description,
		Tag:         tagRotation[i%len(tagRotation)],
	}
}

func FromRecords(rs []Record) []Product {
	out := make([]Product, 0, len(rs))
	for i, r := range rs {
		out = append(out, FromRecord(i, r))
	}
	return out
}
