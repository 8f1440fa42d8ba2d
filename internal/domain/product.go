package domain

import "encoding/json"

// Product represents a catalog row
//
// swagger:model
type Product struct {
	// The ID of the product, assigned by the store
	//
	// required: true
	// min: 1
	// example: 1
	ID int64 `json:"id"`

	// The name of the product
	//
	// required: true
	// example: گوشی سامسونگ مدل 512
	Name string `json:"name"`

	// The description of the product
	//
	// required: false
	// example: دارای باتری قوی و صفحه‌نمایش AMOLED
	Description string `json:"description"`

	// The price of the product in whole toman
	//
	// required: true
	// example: 12500000
	Price int64 `json:"price"`
}

// RetrievedProduct is the read-only projection returned by a catalog search
type RetrievedProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// ProductSummary is a (name, price) pair
type ProductSummary struct {
	Name  string
	Price int64
}

// MarshalJSON encodes the summary as a two element array
func (p ProductSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, p.Price})
}
