package domain

import "strings"

// DraftOrder is the subject of the webhook: a pre-purchase quote created in Shopify.
// It is immutable once received and is never persisted beyond one processing attempt.
type DraftOrder struct {
	ID            int64      `json:"id" validate:"required,gt=0"`
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Note          string     `json:"note"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
	TotalPrice    string     `json:"total_price"`
	SubtotalPrice string     `json:"subtotal_price"`
	TotalTax      string     `json:"total_tax"`
	Currency      string     `json:"currency"`
	Customer      *Customer  `json:"customer,omitempty"`
	LineItems     []LineItem `json:"line_items" validate:"required"`
	Tags          string     `json:"tags"`
}

// LineItem is one product line within a draft order. Its Price already includes
// any decoration surcharge in the raw Shopify payload.
type LineItem struct {
	ID               int64       `json:"id"`
	VariantID        int64       `json:"variant_id"`
	ProductID        int64       `json:"product_id"`
	Title            string      `json:"title"`
	VariantTitle     string      `json:"variant_title"`
	SKU              string      `json:"sku"`
	Vendor           string      `json:"vendor"`
	Quantity         int         `json:"quantity"`
	Price            string      `json:"price"`
	TotalDiscount    string      `json:"total_discount"`
	Properties       []Attribute `json:"properties"`
	CustomAttributes []Attribute `json:"customAttributes"`
}

// Attribute is a free-text key/value pair on a line item. Shopify sends these
// as "properties" (name/value) on REST payloads and "customAttributes"
// (key/value) on GraphQL-shaped ones; we accept both.
type Attribute struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AttrKey returns whichever of key/name the payload populated.
func (a Attribute) AttrKey() string {
	if a.Key != "" {
		return a.Key
	}
	return a.Name
}

// Attributes returns the line's custom attributes, falling back to properties
// when the payload used the REST shape.
func (li LineItem) Attributes() []Attribute {
	if len(li.CustomAttributes) > 0 {
		return li.CustomAttributes
	}
	return li.Properties
}

// Customer is the buyer snapshot embedded in the draft order payload.
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// FullName returns "FirstName LastName" trimmed.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// PlaceholderCustomer synthesizes a customer from a bare order email when the
// payload carries no customer object. The zero ID is a sentinel: advisor
// resolution for it deterministically fails.
func PlaceholderCustomer(email string) *Customer {
	return &Customer{
		ID:        0,
		Email:     email,
		FirstName: "Cliente",
		LastName:  "Shopify",
	}
}

// Advisor is the account executive assigned to a customer, resolved from a
// customer metafield that references a Shopify metaobject. Never supplied by
// the webhook and never persisted.
type Advisor struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// FullName returns "FirstName LastName" trimmed.
func (a *Advisor) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Metafield is one customer metadata entry from the Shopify Admin API.
type Metafield struct {
	ID        string `json:"id"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// MetaobjectField is one field of a Shopify metaobject.
type MetaobjectField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}
