package dto

// Product is the storefront product resource as returned by the REST API.
type Product struct {
	ID            int64       `json:"id"`
	SKU           string      `json:"sku"`
	Name          string      `json:"name"`
	RegularPrice  string      `json:"regular_price"`
	StockQuantity *int        `json:"stock_quantity"`
	Status        string      `json:"status"`
	MetaData      []MetaEntry `json:"meta_data"`
}

type MetaEntry struct {
	ID    int64  `json:"id,omitempty"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// ProductPayload is the write shape for create and update calls.
type ProductPayload struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description"`
	SKU              string      `json:"sku,omitempty"`
	RegularPrice     string      `json:"regular_price"`
	ManageStock      bool        `json:"manage_stock"`
	StockQuantity    int         `json:"stock_quantity"`
	StockStatus      string      `json:"stock_status"`
	Weight           string      `json:"weight,omitempty"`
	Dimensions       *Dimensions `json:"dimensions,omitempty"`
	Type             string      `json:"type"`
	Status           string      `json:"status"`
	MetaData         []MetaEntry `json:"meta_data"`
}

type Dimensions struct {
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// APIError is the storefront error envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status     int    `json:"status"`
		ResourceID int64  `json:"resource_id"`
		UniqueSKU  string `json:"unique_sku"`
	} `json:"data"`
}
