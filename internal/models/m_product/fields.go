package m_product

// Storage key and JSON field names for the persisted product collection.
// The layout is shared with other writers of the same store and must not change.
const (
	StorageKey = "products"

	ProductID   = "productId"
	ProductName = "productName"
	DateTime    = "dateTime"
	Quantity    = "quantity"
)
