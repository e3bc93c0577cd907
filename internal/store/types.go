package store

import "database/sql"

// Tax line parent discriminators.
const (
	ParentLineItem     = "line_item"
	ParentShippingLine = "shipping_line"
)

// Address type discriminators.
const (
	AddressBilling  = "billing"
	AddressShipping = "shipping"
)

// StoreRow is a row of the stores table.
type StoreRow struct {
	ID   string
	Name string
}

// OrderRow is a row of the orders table.
type OrderRow struct {
	ID                 string
	StoreID            string
	EventID            int64
	ReferenceOrderGID  sql.NullString
	ReferenceOrderName sql.NullString
	PlacedAt           sql.NullTime
	Currency           sql.NullString
	Channel            sql.NullString
	Subtotal           sql.NullInt64
	Discount           sql.NullInt64
	Total              sql.NullInt64
	Note               sql.NullString
	Source             sql.NullString
	SourceID           sql.NullString
	Version            sql.NullInt64
	Weight             sql.NullInt64
	IsManual           bool
	IsTest             bool
	Risk               sql.NullString
	TaxIncluded        bool
	DiscountCode       sql.NullString
	DiscountType       sql.NullString
}

// CustomerDetailsRow is a row of the customer_details table, keyed by order.
type CustomerDetailsRow struct {
	OrderID           string
	Email             sql.NullString
	FirstName         sql.NullString
	LastName          sql.NullString
	CustomerReference sql.NullString
}

// AddressRow is a row of the addresses table. The id is assigned on insert.
type AddressRow struct {
	Type      string
	OrderID   string
	FirstName sql.NullString
	LastName  sql.NullString
	Company   sql.NullString
	Phone     sql.NullString
	Line1     sql.NullString
	Line2     sql.NullString
	Line3     sql.NullString
	City      sql.NullString
	County    sql.NullString
	Country   sql.NullString
	Postcode  sql.NullString
}

// LineItemRow is a row of the line_items table.
type LineItemRow struct {
	ID                   string
	OrderID              string
	ProductID            sql.NullString
	VariantID            sql.NullString
	SKU                  sql.NullString
	Quantity             sql.NullInt64
	PricingQuantity      sql.NullInt64
	Reference            sql.NullString
	ReferenceLineItemGID sql.NullString
	ParentLineItemID     sql.NullString
	GroupIdentifier      sql.NullString
	Weight               sql.NullInt64
	Subtotal             sql.NullInt64
	Discount             sql.NullInt64
	Total                sql.NullInt64
}

// TaxLineRow is a row of the tax_lines table.
// ParentType is ParentLineItem or ParentShippingLine.
type TaxLineRow struct {
	ID         string
	ParentType string
	ParentID   string
	Name       sql.NullString
	Rate       sql.NullString
	RateType   sql.NullString
	Amount     sql.NullInt64
	Currency   sql.NullString
	Reference  sql.NullString
}

// ShippingLineRow is a row of the shipping_lines table.
type ShippingLineRow struct {
	ID        string
	OrderID   string
	Name      sql.NullString
	Handle    sql.NullString
	Reference sql.NullString
	Amount    sql.NullInt64
	Currency  sql.NullString
}

// ChargeRow is a row of the charges table.
type ChargeRow struct {
	ID                            string
	OrderID                       string
	Gateway                       sql.NullString
	GatewayReference              sql.NullString
	GatewayPaymentMethodReference sql.NullString
	PaymentMethodID               sql.NullString
	Reference                     sql.NullString
	Status                        sql.NullString
	Amount                        sql.NullInt64
	Currency                      sql.NullString
}

// DiscountCodeRow is a row of the discount_codes table. The id is assigned on insert.
type DiscountCodeRow struct {
	OrderID string
	Code    sql.NullString
}

// AppliedDiscountRow is a row of the applied_discounts table.
type AppliedDiscountRow struct {
	ID        string
	OrderID   string
	Amount    sql.NullInt64
	Code      sql.NullString
	Reference sql.NullString
	Title     sql.NullString
	Type      sql.NullString
	Value     sql.NullFloat64
}

// AppliedDiscountTargetRow is a row of the applied_discount_targets table.
// The id is assigned on insert.
type AppliedDiscountTargetRow struct {
	DiscountID       string
	TargetType       sql.NullString
	VariantProductID sql.NullString
	VariantVariantID sql.NullString
}

// LineItemGraph is a line item with its tax lines.
type LineItemGraph struct {
	Item     LineItemRow
	TaxLines []TaxLineRow
}

// ShippingLineGraph is a shipping line with its tax lines.
type ShippingLineGraph struct {
	Line     ShippingLineRow
	TaxLines []TaxLineRow
}

// AppliedDiscountGraph is an applied discount with its variant targets.
type AppliedDiscountGraph struct {
	Discount AppliedDiscountRow
	Targets  []AppliedDiscountTargetRow
}

// OrderGraph is an order and every child row derived from the same payload.
// WriteOrder inserts it parent-first.
type OrderGraph struct {
	Order            OrderRow
	Customer         *CustomerDetailsRow
	Addresses        []AddressRow
	LineItems        []LineItemGraph
	ShippingLines    []ShippingLineGraph
	Charges          []ChargeRow
	DiscountCodes    []DiscountCodeRow
	AppliedDiscounts []AppliedDiscountGraph
}

// RowCounts tallies the rows an OrderGraph will write, keyed by table name.
func (g *OrderGraph) RowCounts() map[string]int {
	counts := map[string]int{
		"orders":            1,
		"addresses":         len(g.Addresses),
		"line_items":        len(g.LineItems),
		"shipping_lines":    len(g.ShippingLines),
		"charges":           len(g.Charges),
		"discount_codes":    len(g.DiscountCodes),
		"applied_discounts": len(g.AppliedDiscounts),
	}
	if g.Customer != nil {
		counts["customer_details"] = 1
	}
	for _, li := range g.LineItems {
		counts["tax_lines"] += len(li.TaxLines)
	}
	for _, sl := range g.ShippingLines {
		counts["tax_lines"] += len(sl.TaxLines)
	}
	for _, d := range g.AppliedDiscounts {
		counts["applied_discount_targets"] += len(d.Targets)
	}
	return counts
}
