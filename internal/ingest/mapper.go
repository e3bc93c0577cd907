package ingest

import (
	"errors"
	"fmt"

	"github.com/roach88/orderload/internal/store"
	"github.com/roach88/orderload/internal/tree"
)

// ErrMissingField is returned when an identifier a row is keyed by is absent.
var ErrMissingField = errors.New("missing required field")

// Applied discount target type that carries per-variant detail.
const targetTypeVariant = "variant"

// requireID returns the identifier at key as text.
// Strings and integers are accepted; anything else is ErrMissingField.
func requireID(obj tree.Object, key, where string) (string, error) {
	switch v := obj.Get(key).(type) {
	case tree.String:
		if v != "" {
			return string(v), nil
		}
	case tree.Int:
		s, _ := tree.Text(v)
		return s, nil
	}
	return "", fmt.Errorf("%s.%s: %w", where, key, ErrMissingField)
}

// mapStore converts payload.store into a stores row.
func mapStore(obj tree.Object) (store.StoreRow, error) {
	id, err := requireID(obj, "id", "store")
	if err != nil {
		return store.StoreRow{}, err
	}
	name, ok := tree.Text(obj.Get("name"))
	if !ok {
		return store.StoreRow{}, fmt.Errorf("store.name: %w", ErrMissingField)
	}
	return store.StoreRow{ID: id, Name: name}, nil
}

// mapOrder converts payload.order into an order and all its child rows.
// Optional fields that are missing or malformed become NULL.
func mapOrder(o tree.Object, eventID int64, storeID string) (*store.OrderGraph, error) {
	orderID, err := requireID(o, "orderId", "order")
	if err != nil {
		return nil, err
	}

	g := &store.OrderGraph{
		Order: store.OrderRow{
			ID:                 orderID,
			StoreID:            storeID,
			EventID:            eventID,
			ReferenceOrderGID:  o.NullString("reference.orderGid"),
			ReferenceOrderName: o.NullString("reference.orderName"),
			PlacedAt:           o.NullTime("placedAt"),
			Currency:           o.NullString("currency"),
			Channel:            o.NullString("channel"),
			Subtotal:           o.NullInt64("amounts.subtotal"),
			Discount:           o.NullInt64("amounts.discount"),
			Total:              o.NullInt64("amounts.total"),
			Note:               o.NullString("note"),
			Source:             o.NullString("source"),
			SourceID:           o.NullString("sourceId"),
			Version:            o.NullInt64("version"),
			Weight:             o.NullInt64("weight"),
			IsManual:           o.BoolOr("isManual", false),
			IsTest:             o.BoolOr("isTest", false),
			Risk:               o.NullString("risk"),
			TaxIncluded:        o.BoolOr("taxIncluded", false),
			DiscountCode:       o.NullString("discountCode"),
			DiscountType:       o.NullString("discountType"),
		},
	}

	if c, ok := o.Object("customerDetails"); ok && len(c) > 0 {
		g.Customer = &store.CustomerDetailsRow{
			OrderID:           orderID,
			Email:             c.NullString("email"),
			FirstName:         c.NullString("firstName"),
			LastName:          c.NullString("lastName"),
			CustomerReference: o.NullString("customerReference"),
		}
	}

	for _, side := range []struct {
		key, typ string
	}{
		{"billingDetails", store.AddressBilling},
		{"shippingDetails", store.AddressShipping},
	} {
		if d, ok := o.Object(side.key); ok && len(d) > 0 {
			g.Addresses = append(g.Addresses, mapAddress(d, side.typ, orderID))
		}
	}

	for i, v := range o.Array("lineItems") {
		item, ok := v.(tree.Object)
		if !ok {
			continue
		}
		li, err := mapLineItem(item, orderID)
		if err != nil {
			return nil, fmt.Errorf("lineItems[%d]: %w", i, err)
		}
		g.LineItems = append(g.LineItems, li)
	}

	for i, v := range o.Array("shippingLines") {
		line, ok := v.(tree.Object)
		if !ok {
			continue
		}
		sl, err := mapShippingLine(line, orderID)
		if err != nil {
			return nil, fmt.Errorf("shippingLines[%d]: %w", i, err)
		}
		g.ShippingLines = append(g.ShippingLines, sl)
	}

	for i, v := range o.Array("charges") {
		charge, ok := v.(tree.Object)
		if !ok {
			continue
		}
		ch, err := mapCharge(charge, orderID)
		if err != nil {
			return nil, fmt.Errorf("charges[%d]: %w", i, err)
		}
		g.Charges = append(g.Charges, ch)
	}

	for _, v := range o.Array("discountCodes") {
		g.DiscountCodes = append(g.DiscountCodes, mapDiscountCode(v, orderID))
	}

	for i, v := range o.Array("appliedDiscounts") {
		discount, ok := v.(tree.Object)
		if !ok {
			continue
		}
		ad, err := mapAppliedDiscount(discount, orderID)
		if err != nil {
			return nil, fmt.Errorf("appliedDiscounts[%d]: %w", i, err)
		}
		g.AppliedDiscounts = append(g.AppliedDiscounts, ad)
	}

	return g, nil
}

func mapAddress(d tree.Object, typ, orderID string) store.AddressRow {
	return store.AddressRow{
		Type:      typ,
		OrderID:   orderID,
		FirstName: d.NullString("firstName"),
		LastName:  d.NullString("lastName"),
		Company:   d.NullString("company"),
		Phone:     d.NullString("phone"),
		Line1:     d.NullString("address.line1"),
		Line2:     d.NullString("address.line2"),
		Line3:     d.NullString("address.line3"),
		City:      d.NullString("address.city"),
		County:    d.NullString("address.county"),
		Country:   d.NullString("address.country"),
		Postcode:  d.NullString("address.postcode"),
	}
}

func mapLineItem(item tree.Object, orderID string) (store.LineItemGraph, error) {
	id, err := requireID(item, "id", "lineItem")
	if err != nil {
		return store.LineItemGraph{}, err
	}

	taxLines, err := mapTaxLines(item.Array("taxLines"), store.ParentLineItem, id)
	if err != nil {
		return store.LineItemGraph{}, err
	}

	return store.LineItemGraph{
		Item: store.LineItemRow{
			ID:                   id,
			OrderID:              orderID,
			ProductID:            item.NullString("productId"),
			VariantID:            item.NullString("variantId"),
			SKU:                  item.NullString("sku"),
			Quantity:             item.NullInt64("quantity"),
			PricingQuantity:      item.NullInt64("pricingQuantity"),
			Reference:            item.NullString("reference"),
			ReferenceLineItemGID: item.NullString("references.lineItemGid"),
			ParentLineItemID:     item.NullString("parentLineItemId"),
			GroupIdentifier:      item.NullString("groupIdentifier"),
			Weight:               item.NullInt64("weight"),
			Subtotal:             item.NullInt64("amounts.subtotal"),
			Discount:             item.NullInt64("amounts.discount"),
			Total:                item.NullInt64("amounts.total"),
		},
		TaxLines: taxLines,
	}, nil
}

func mapShippingLine(line tree.Object, orderID string) (store.ShippingLineGraph, error) {
	id, err := requireID(line, "id", "shippingLine")
	if err != nil {
		return store.ShippingLineGraph{}, err
	}

	taxLines, err := mapTaxLines(line.Array("taxLines"), store.ParentShippingLine, id)
	if err != nil {
		return store.ShippingLineGraph{}, err
	}

	return store.ShippingLineGraph{
		Line: store.ShippingLineRow{
			ID:        id,
			OrderID:   orderID,
			Name:      line.NullString("name"),
			Handle:    line.NullString("handle"),
			Reference: line.NullString("reference"),
			Amount:    line.NullInt64("amount"),
			Currency:  line.NullString("currency"),
		},
		TaxLines: taxLines,
	}, nil
}

// mapTaxLines converts a taxLines array under a line item or shipping line.
func mapTaxLines(arr tree.Array, parentType, parentID string) ([]store.TaxLineRow, error) {
	var rows []store.TaxLineRow
	for i, v := range arr {
		tax, ok := v.(tree.Object)
		if !ok {
			continue
		}
		id, err := requireID(tax, "id", "taxLine")
		if err != nil {
			return nil, fmt.Errorf("taxLines[%d]: %w", i, err)
		}
		rows = append(rows, store.TaxLineRow{
			ID:         id,
			ParentType: parentType,
			ParentID:   parentID,
			Name:       tax.NullString("name"),
			Rate:       tax.NullString("rate"),
			RateType:   tax.NullString("rateType"),
			Amount:     tax.NullInt64("amount"),
			Currency:   tax.NullString("currency"),
			Reference:  tax.NullString("reference"),
		})
	}
	return rows, nil
}

func mapCharge(charge tree.Object, orderID string) (store.ChargeRow, error) {
	id, err := requireID(charge, "id", "charge")
	if err != nil {
		return store.ChargeRow{}, err
	}
	return store.ChargeRow{
		ID:                            id,
		OrderID:                       orderID,
		Gateway:                       charge.NullString("gateway"),
		GatewayReference:              charge.NullString("gatewayReference"),
		GatewayPaymentMethodReference: charge.NullString("gatewayPaymentMethodReference"),
		PaymentMethodID:               charge.NullString("paymentMethodId"),
		Reference:                     charge.NullString("reference"),
		Status:                        charge.NullString("status"),
		Amount:                        charge.NullInt64("amount"),
		Currency:                      charge.NullString("currency"),
	}, nil
}

// mapDiscountCode accepts {"code": "X"} or a bare "X".
// A missing code is left NULL for the NOT NULL constraint to reject.
func mapDiscountCode(v tree.Value, orderID string) store.DiscountCodeRow {
	row := store.DiscountCodeRow{OrderID: orderID}
	switch val := v.(type) {
	case tree.Object:
		row.Code = val.NullString("code")
	case tree.String:
		row.Code.String, row.Code.Valid = string(val), true
	}
	return row
}

func mapAppliedDiscount(d tree.Object, orderID string) (store.AppliedDiscountGraph, error) {
	id, err := requireID(d, "id", "appliedDiscount")
	if err != nil {
		return store.AppliedDiscountGraph{}, err
	}

	g := store.AppliedDiscountGraph{
		Discount: store.AppliedDiscountRow{
			ID:        id,
			OrderID:   orderID,
			Amount:    d.NullInt64("amount"),
			Code:      d.NullString("code"),
			Reference: d.NullString("reference"),
			Title:     d.NullString("title"),
			Type:      d.NullString("type"),
			Value:     d.NullFloat64("value"),
		},
	}

	// Only variant targets are captured; other target types are dropped.
	targetType := d.NullString("appliesTo.targetType")
	if !targetType.Valid || targetType.String != targetTypeVariant {
		return g, nil
	}
	for _, v := range d.Array("appliesTo.target.variants") {
		variant, ok := v.(tree.Object)
		if !ok {
			continue
		}
		g.Targets = append(g.Targets, store.AppliedDiscountTargetRow{
			DiscountID:       id,
			TargetType:       targetType,
			VariantProductID: variant.NullString("productId"),
			VariantVariantID: variant.NullString("variantId"),
		})
	}
	return g, nil
}
