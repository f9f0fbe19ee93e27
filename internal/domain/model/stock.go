package model

// StockEntry is one warehouse stock row. A product code may appear in
// several rows; quantities are summed per code before use.
type StockEntry struct {
	Code     int64
	Quantity float64
}
