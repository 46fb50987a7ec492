package m_product

// Data is one element of the persisted product array.
type Data struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	DateTime    string `json:"dateTime"`
	Quantity    string `json:"quantity"`
}
