package dto

type Client struct {
	CodCliente int64  `json:"codcliente"`
	Cliente    string `json:"cliente"`
	CgcEnt     string `json:"cgcent"`
	EmailNfe   string `json:"emailnfe"`
}

type CreateClientRequest struct {
	CodFilial      string `json:"codfilial"`
	CgcEnt         string `json:"cgcent"`
	IeEnt          string `json:"ieent"`
	Cliente        string `json:"cliente"`
	Fantasia       string `json:"fantasia"`
	EmailNfe       string `json:"emailnfe"`
	CodCidadeIbge  string `json:"codcidadeibge,omitempty"`
	EnderEnt       string `json:"enderent"`
	NumeroEnt      string `json:"numeroent"`
	ComplementoEnt string `json:"complementoent,omitempty"`
	BairroEnt      string `json:"bairroent"`
	MunicEnt       string `json:"municent"`
	EstEnt         string `json:"estent"`
	CepEnt         string `json:"cepent"`
	TelEnt         string `json:"telent"`
	TelCelEnt      string `json:"telcelent"`
}
