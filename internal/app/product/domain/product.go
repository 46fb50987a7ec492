package domain

import (
	"strings"
	"time"
)

// Product is one inventory record. It is a comparable value: two collections
// are structurally equal when their products compare equal in order.
type Product struct {
	id       string
	name     string
	quantity string
	dateTime string
}

// NewProduct creates a new Product (for creation). Name and quantity are
// trimmed and validated; dateTime is set from now.
func NewProduct(id, name, quantity string, now time.Time) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, fieldErr(FieldProductID, ErrInvalidProductID)
	}

	name, quantity, err := ValidateDetails(name, quantity)
	if err != nil {
		return Product{}, err
	}

	return Product{
		id:       id,
		name:     name,
		quantity: quantity,
		dateTime: FormatTimestamp(now),
	}, nil
}

// ReconstructProduct reconstitutes a Product from storage without validation;
// stored data written by other clients is shown as-is.
func ReconstructProduct(id, name, quantity, dateTime string) Product {
	return Product{
		id:       id,
		name:     name,
		quantity: quantity,
		dateTime: dateTime,
	}
}

// Getters
func (p Product) ID() string       { return p.id }
func (p Product) Name() string     { return p.name }
func (p Product) Quantity() string { return p.quantity }
func (p Product) DateTime() string { return p.dateTime }

// WithDetails returns a copy with a new name and quantity and a refreshed
// dateTime. The id never changes.
func (p Product) WithDetails(name, quantity string, now time.Time) (Product, error) {
	name, quantity, err := ValidateDetails(name, quantity)
	if err != nil {
		return Product{}, err
	}

	p.name = name
	p.quantity = quantity
	p.dateTime = FormatTimestamp(now)
	return p, nil
}

// HasName reports whether the product's name equals name, ignoring case.
func (p Product) HasName(name string) bool {
	return strings.EqualFold(p.name, strings.TrimSpace(name))
}

// ValidateDetails trims name and quantity and checks that both are present
// and that quantity is a non-negative whole number.
func ValidateDetails(name, quantity string) (string, string, error) {
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)

	if name == "" {
		return "", "", fieldErr(FieldProductName, ErrEmptyField)
	}
	if quantity == "" {
		return "", "", fieldErr(FieldQuantity, ErrEmptyField)
	}
	if !isWholeNumber(quantity) {
		return "", "", fieldErr(FieldQuantity, ErrInvalidQuantity)
	}
	return name, quantity, nil
}

func isWholeNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
