package dto

type CreateOrderRequest struct {
	CodParceiro    string      `json:"codparceiro"`
	NumPedWeb      string      `json:"numpedweb"`
	Data           string      `json:"data"`
	CondVenda      int         `json:"condvenda"`
	CodFilial      string      `json:"codfilial"`
	Cliente        string      `json:"cliente"`
	Fantasia       string      `json:"fantasia"`
	Cnpj           string      `json:"cnpj"`
	IeEnt          string      `json:"ieent"`
	Rg             string      `json:"rg"`
	EmailNfe       string      `json:"emailnfe"`
	EnderEnt       string      `json:"enderent"`
	ComplementoEnt string      `json:"complementoent"`
	NumeroEnt      string      `json:"numeroent"`
	BairroEnt      string      `json:"bairroent"`
	CepEnt         string      `json:"cepent"`
	EstEnt         string      `json:"estent"`
	MunicEnt       string      `json:"municent"`
	CodCidadeIbge  string      `json:"codcidadeibge,omitempty"`
	TelEnt         string      `json:"telent"`
	TelCelEnt      string      `json:"telcelent"`
	FreteDespacho  string      `json:"fretedespacho"`
	Transportadora string      `json:"idtransportadora"`
	VlProdutos     float64     `json:"vlprodutos"`
	VlFrete        string      `json:"vlfrete"`
	VlTotal        string      `json:"vltotal"`
	Itens          []OrderItem `json:"itens"`
	Pagamentos     []Payment   `json:"pagamentos"`
}

type OrderItem struct {
	CodProd     int64  `json:"codprod"`
	NomeProduto string `json:"nomeproduto"`
	PVenda      string `json:"pvenda"`
	PVendaBase  string `json:"pvendabase"`
	Qt          int    `json:"qt"`
	Brinde      string `json:"brinde"`
}

type Payment struct {
	Adquirente         string `json:"adquirente"`
	FormaPagamento     string `json:"formapagamento"`
	IdPagamentoPix     string `json:"idpagamentopix"`
	NomeFormaPagamento string `json:"nomeformapagamento"`
	NsuCartao          string `json:"nsucartao"`
	Parcelas           int    `json:"parcelas"`
	ValorPago          string `json:"valorpago"`
}
