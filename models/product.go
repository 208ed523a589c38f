package models

// Product represents a catalog item stored in the products table.
// ID is generated at creation time and is the sole lookup key.
type Product struct {
	ID          string `json:"id" dynamodbav:"id"`
	Name        string `json:"name" dynamodbav:"name"`
	Description string `json:"description" dynamodbav:"description"`
	Date        string `json:"date" dynamodbav:"date"`
}

// ProductInput is the request body for create and full update.
// All three fields are required; update is a full overwrite, not a patch.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Validate reports whether all required fields are present.
func (in ProductInput) Validate() bool {
	return in.Name != "" && in.Description != "" && in.Date != ""
}
