package dto

type Product struct {
	CodProd        int64   `json:"codprod"`
	Descricao      string  `json:"descricao"`
	NomeEcommerce  string  `json:"nomeecommerce"`
	DescricaoCurta string  `json:"descricaocurta"`
	DescricaoLonga string  `json:"descricaolonga"`
	PesoLiqGr      float64 `json:"pesoliq_gr"`
	ComprimentoCm  float64 `json:"comprimento_cm"`
	LarguraCm      float64 `json:"largura_cm"`
	AlturaCm       float64 `json:"altura_cm"`
}
