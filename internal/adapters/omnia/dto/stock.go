package dto

type Stock struct {
	CodProd int64   `json:"codprod"`
	Estoque float64 `json:"estoque"`
}
