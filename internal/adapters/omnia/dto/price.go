package dto

type Price struct {
	CodProd         int64   `json:"codprod"`
	PVenda          float64 `json:"pvenda"`
	QtMinimaAtacado int     `json:"qtminimaatacado"`
	PVendaAtacado   float64 `json:"pvendaatacado"`
}
