// internal/models/product.go
package models

import "time"

// Product is a row of the products table as the product management screens
// saved it. Price keeps the raw text that was entered, so it may not parse.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// CarouselJumpForm is posted by an indicator dot.
type CarouselJumpForm struct {
	Index int `form:"index" validate:"min=0"`
}
