package model

import "strconv"

// Product is an Omnia catalog record. Code is the numeric product code that,
// once normalized, becomes the storefront SKU.
type Product struct {
	Code             int64
	Description      string
	EcommerceName    string
	ShortDescription string
	LongDescription  string
	NetWeightGrams   float64
	LengthCM         float64
	WidthCM          float64
	HeightCM         float64
}

// SKU returns the raw string form of the product code.
func (p Product) SKU() string {
	return strconv.FormatInt(p.Code, 10)
}

// DisplayName prefers the e-commerce name and falls back to the ERP
// description.
func (p Product) DisplayName() string {
	if p.EcommerceName != "" {
		return p.EcommerceName
	}
	return p.Description
}
