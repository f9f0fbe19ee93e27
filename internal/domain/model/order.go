package model

// Order is the storefront webhook payload for a newly created order. Field
// names follow the WooCommerce REST shapes, including the Brazilian checkout
// extension fields on billing (persontype, cpf, cnpj, neighborhood).
type Order struct {
	ID                 int64      `json:"id"`
	Status             string     `json:"status"`
	Currency           string     `json:"currency"`
	DateCreated        string     `json:"date_created"`
	DiscountTotal      string     `json:"discount_total"`
	ShippingTotal      string     `json:"shipping_total"`
	ShippingTax        string     `json:"shipping_tax"`
	Total              string     `json:"total"`
	Number             string     `json:"number"`
	CustomerID         int64      `json:"customer_id"`
	PaymentMethod      string     `json:"payment_method"`
	PaymentMethodTitle string     `json:"payment_method_title"`
	TransactionID      string     `json:"transaction_id"`
	Billing            Billing    `json:"billing"`
	Shipping           Shipping   `json:"shipping"`
	LineItems          []LineItem `json:"line_items"`
}

type Billing struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Company      string `json:"company"`
	Address1     string `json:"address_1"`
	Address2     string `json:"address_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Cellphone    string `json:"cellphone"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	PersonType   string `json:"persontype"`
	CPF          string `json:"cpf"`
	CNPJ         string `json:"cnpj"`
}

type Shipping struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address1     string `json:"address_1"`
	Address2     string `json:"address_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
}

type LineItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
	Price    float64 `json:"price"`
}

// Document returns the fiscal document used to look the customer up in the
// ERP: CPF for natural persons, CNPJ otherwise.
func (b Billing) Document() string {
	if b.PersonType == "F" {
		return b.CPF
	}
	return b.CNPJ
}
