package domain

import (
	"github.com/shopspring/decimal"

	shipping "github.com/miniretail/checkout/internal/shipping/domain"
)

// ReceiptLine mirrors one cart line: quantity, product name, and the line
// total (unit price times quantity).
type ReceiptLine struct {
	Quantity  int64
	Name      string
	LineTotal decimal.Decimal
}

// Receipt is the result of a settled checkout, consumed by the presentation
// layer. Lines follow cart insertion order; Balance is the customer's balance
// after payment.
type Receipt struct {
	Lines       []ReceiptLine
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
	Shipment    shipping.ShipmentNotice
	Balance     decimal.Decimal
}

// QuoteLine prices one cart line without touching stock or balance.
type QuoteLine struct {
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is a read-only price preview of the cart: line totals, the shipping
// fee the cart would incur, and the grand total.
type Quote struct {
	Lines       []QuoteLine
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
}
