package domain

// IndexOf returns the position of the product with id, or -1.
func IndexOf(products []Product, id string) int {
	for i, p := range products {
		if p.id == id {
			return i
		}
	}
	return -1
}

// EnsureUniqueName fails with ErrDuplicateName when a product other than
// exceptID already carries name, ignoring case. Pass "" to check against
// every product.
func EnsureUniqueName(products []Product, name, exceptID string) error {
	for _, p := range products {
		if p.id != exceptID && p.HasName(name) {
			return fieldErr(FieldProductName, ErrDuplicateName)
		}
	}
	return nil
}
