package usecases

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"omnia-sync/internal/adapters/omnia"
	"omnia-sync/internal/adapters/omnia/dto"
	"omnia-sync/internal/adapters/viacep"
	"omnia-sync/internal/config"
	"omnia-sync/internal/domain/model"
	"omnia-sync/internal/logging"
)

var (
	ErrMissingBody      = errors.New("webhook body missing")
	ErrMissingSignature = errors.New("webhook signature missing")
	ErrInvalidSignature = errors.New("webhook signature invalid")
)

// OrderProcessor forwards storefront orders into the ERP: verify the
// webhook signature, enrich the address with the IBGE city code, make sure
// the customer exists, then create the order.
type OrderProcessor struct {
	clients  omnia.ClientService
	orders   omnia.OrderService
	cityCode viacep.CityCodeService
	logger   logging.LoggerService
	omniaCfg config.OmniaConfig
	secret   string
}

func NewOrderProcessor(
	clients omnia.ClientService,
	orders omnia.OrderService,
	cityCode viacep.CityCodeService,
	omniaCfg config.OmniaConfig,
	webhookSecret string,
	logger logging.LoggerService,
) *OrderProcessor {
	return &OrderProcessor{
		clients:  clients,
		orders:   orders,
		cityCode: cityCode,
		logger:   logger,
		omniaCfg: omniaCfg,
		secret:   webhookSecret,
	}
}

// ProcessWebhook validates one created-order webhook delivery and forwards
// the order. body must be the raw request bytes; the signature covers them
// exactly as sent.
func (p *OrderProcessor) ProcessWebhook(ctx context.Context, body []byte, signature string) error {
	if len(body) == 0 {
		return ErrMissingBody
	}
	if signature == "" {
		return ErrMissingSignature
	}
	if !p.validSignature(body, signature) {
		p.logger.LogWarning("rejected webhook with invalid signature")
		return ErrInvalidSignature
	}

	var order model.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return fmt.Errorf("decode order payload: %w", err)
	}
	return p.Process(ctx, order)
}

func (p *OrderProcessor) validSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Process forwards one decoded order. The IBGE lookup is best effort: the
// ERP accepts orders without the city code, so a failed lookup only warns.
func (p *OrderProcessor) Process(ctx context.Context, order model.Order) error {
	ibgeCode, err := p.cityCode.LookupIBGECode(ctx, order.Billing.Postcode)
	if err != nil {
		p.logger.LogWarning(fmt.Sprintf("ibge lookup failed for order %s: %v", order.Number, err))
		ibgeCode = ""
	}

	document := order.Billing.Document()
	existing, err := p.clients.GetClientByDocument(ctx, document)
	if err != nil {
		return fmt.Errorf("lookup client for order %s: %w", order.Number, err)
	}
	if len(existing) == 0 {
		p.logger.LogWarning(fmt.Sprintf("client %s not found, creating it for order %s", document, order.Number))
		if err := p.clients.CreateClient(ctx, p.buildClientPayload(order, ibgeCode)); err != nil {
			return fmt.Errorf("create client for order %s: %w", order.Number, err)
		}
	}

	request := p.buildOrderPayload(order, ibgeCode)
	if err := p.orders.CreateOrder(ctx, request); err != nil {
		return fmt.Errorf("create order %s: %w", order.Number, err)
	}

	p.logger.LogSuccess(fmt.Sprintf("order %s forwarded as %s", order.Number, request.NumPedWeb))
	return nil
}

func (p *OrderProcessor) buildClientPayload(order model.Order, ibgeCode string) dto.CreateClientRequest {
	billing := order.Billing
	return dto.CreateClientRequest{
		CodFilial:      p.omniaCfg.BranchCode,
		CgcEnt:         billing.Document(),
		IeEnt:          "ISENTO",
		Cliente:        fullName(billing.FirstName, billing.LastName),
		Fantasia:       billing.Company,
		EmailNfe:       billing.Email,
		CodCidadeIbge:  ibgeCode,
		EnderEnt:       billing.Address1,
		NumeroEnt:      billing.Number,
		ComplementoEnt: billing.Address2,
		BairroEnt:      billing.Neighborhood,
		MunicEnt:       billing.City,
		EstEnt:         billing.State,
		CepEnt:         digitsOnly(billing.Postcode),
		TelEnt:         digitsOnly(billing.Phone),
		TelCelEnt:      digitsOnly(billing.Phone),
	}
}

func (p *OrderProcessor) buildOrderPayload(order model.Order, ibgeCode string) dto.CreateOrderRequest {
	billing := order.Billing

	items := make([]dto.OrderItem, 0, len(order.LineItems))
	var productsTotal float64
	for _, line := range order.LineItems {
		code, err := strconv.ParseInt(line.SKU, 10, 64)
		if err != nil {
			p.logger.LogWarning(fmt.Sprintf("order %s line %q has a non-numeric sku %q", order.Number, line.Name, line.SKU))
		}
		if total, err := strconv.ParseFloat(line.Total, 64); err == nil {
			productsTotal += total
		}
		items = append(items, dto.OrderItem{
			CodProd:     code,
			NomeProduto: line.Name,
			PVenda:      line.Total,
			PVendaBase:  line.Total,
			Qt:          line.Quantity,
			Brinde:      "N",
		})
	}

	return dto.CreateOrderRequest{
		CodParceiro:    p.omniaCfg.PartnerCode,
		NumPedWeb:      "PED-" + order.Number,
		Data:           order.DateCreated,
		CondVenda:      1,
		CodFilial:      p.omniaCfg.BranchCode,
		Cliente:        fullName(billing.FirstName, billing.LastName),
		Fantasia:       billing.Company,
		Cnpj:           billing.Document(),
		IeEnt:          "ISENTO",
		Rg:             "",
		EmailNfe:       billing.Email,
		EnderEnt:       billing.Address1,
		ComplementoEnt: billing.Address2,
		NumeroEnt:      billing.Number,
		BairroEnt:      billing.Neighborhood,
		CepEnt:         digitsOnly(billing.Postcode),
		EstEnt:         billing.State,
		MunicEnt:       billing.City,
		CodCidadeIbge:  ibgeCode,
		TelEnt:         digitsOnly(billing.Phone),
		TelCelEnt:      digitsOnly(billing.Cellphone),
		FreteDespacho:  "C",
		Transportadora: p.omniaCfg.CarrierName,
		VlProdutos:     productsTotal,
		VlFrete:        order.ShippingTax,
		VlTotal:        order.Total,
		Itens:          items,
		Pagamentos: []dto.Payment{
			{
				Adquirente:         "CIELO",
				FormaPagamento:     PaymentMethodCode(order.PaymentMethod),
				IdPagamentoPix:     "",
				NomeFormaPagamento: order.PaymentMethodTitle,
				NsuCartao:          order.TransactionID,
				Parcelas:           1,
				ValorPago:          order.Total,
			},
		},
	}
}

// PaymentMethodCode maps a storefront card brand to the ERP payment code.
// Unknown methods pass through unchanged.
func PaymentMethodCode(method string) string {
	switch strings.ToLower(method) {
	case "visa":
		return "CCV"
	case "mastercard":
		return "CCM"
	case "american express":
		return "CCA"
	case "elo":
		return "CCE"
	case "hipercard":
		return "CCH"
	case "diners club":
		return "CCD"
	default:
		return method
	}
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
