package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidItem     = errors.New("cart item id is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrItemNotFound    = errors.New("item not in cart")
)

// Item is one cart line. At most one Item exists per ID.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Total is the sum of price × quantity over items; an empty cart totals 0.
func Total(items []Item) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.InexactFloat64()
}

// FormatTotal renders a total with two decimals for display.
func FormatTotal(total float64) string {
	return decimal.NewFromFloat(total).StringFixed(2)
}

// Units is the number of units across all lines.
func Units(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func indexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// normalize merges duplicate ids and drops non-positive quantities, keeping
// first-seen order.
func normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity <= 0 {
			continue
		}
		if i := indexOf(out, it.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}
