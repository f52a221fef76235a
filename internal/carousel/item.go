// internal/carousel/item.go
package carousel

import (
	"errors"
	"time"
)

// DefaultInterval is how often a mounted carousel advances on its own.
const DefaultInterval = 3 * time.Second

var (
	ErrNoItems         = errors.New("carousel: item sequence is empty")
	ErrIndexOutOfRange = errors.New("carousel: index out of range")
)

// Item is one featured-product entry shown by the carousel.
type Item struct {
	ImageRef string `json:"image_ref" yaml:"image_ref"`
	AltText  string `json:"alt_text" yaml:"alt_text"`
	Title    string `json:"title" yaml:"title"`
}

// DefaultItems returns the built-in featured products.
func DefaultItems() []Item {
	return []Item{
		{ImageRef: "/static/img/apple.jpeg", AltText: "Apple", Title: "Fresh Apples"},
		{ImageRef: "/static/img/OIP.jpeg", AltText: "Product 2", Title: "Special Product"},
		{ImageRef: "/static/img/strawberries.jpeg", AltText: "Strawberries", Title: "Sweet Strawberries"},
		{ImageRef: "/static/img/grapes.jpeg", AltText: "Grapes", Title: "Juicy Grapes"},
		{ImageRef: "/static/img/pears.jpeg", AltText: "Pears", Title: "Ripe Pears"},
		{ImageRef: "/static/img/coke.jpeg", AltText: "Coke", Title: "Refreshing Coke"},
		{ImageRef: "/static/img/cake.jpeg", AltText: "Cake", Title: "Delicious Cake"},
		{ImageRef: "/static/img/sandwitch.jpeg", AltText: "Sandwich", Title: "Fresh Sandwich"},
	}
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func sameItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
