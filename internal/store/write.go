package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is one record's unit of work. Every write in a record goes through the
// same Tx so that the record commits or rolls back as a whole.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a transaction and commits if fn returns nil.
// Any error from fn rolls the transaction back and is returned unchanged.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// InsertEvent inserts an event row and returns its surrogate id.
// created_at is filled by the database.
func (t *Tx) InsertEvent(ctx context.Context, name string) (int64, error) {
	result, err := t.tx.ExecContext(ctx,
		"INSERT INTO events (event_name) VALUES (?)",
		name,
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert event: last insert id: %w", err)
	}
	return id, nil
}

// UpsertStore inserts or replaces a store by id.
func (t *Tx) UpsertStore(ctx context.Context, st StoreRow) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO stores (id, name) VALUES (?, ?)",
		st.ID, st.Name,
	)
	if err != nil {
		return fmt.Errorf("upsert store %s: %w", st.ID, err)
	}
	return nil
}

// WriteOrder writes an order and all of its children, parent rows first.
//
// The order row uses INSERT OR REPLACE. Children use plain INSERT and are not
// cleared first, so writing the same order twice appends surrogate-keyed
// children again and fails on externally keyed ones.
func (t *Tx) WriteOrder(ctx context.Context, g *OrderGraph) error {
	if err := t.upsertOrder(ctx, g.Order); err != nil {
		return err
	}

	if g.Customer != nil {
		if err := t.insertCustomerDetails(ctx, *g.Customer); err != nil {
			return err
		}
	}

	for _, addr := range g.Addresses {
		if err := t.insertAddress(ctx, addr); err != nil {
			return err
		}
	}

	for _, li := range g.LineItems {
		if err := t.insertLineItem(ctx, li.Item); err != nil {
			return err
		}
		for _, tax := range li.TaxLines {
			if err := t.insertTaxLine(ctx, tax); err != nil {
				return err
			}
		}
	}

	for _, sl := range g.ShippingLines {
		if err := t.insertShippingLine(ctx, sl.Line); err != nil {
			return err
		}
		for _, tax := range sl.TaxLines {
			if err := t.insertTaxLine(ctx, tax); err != nil {
				return err
			}
		}
	}

	for _, ch := range g.Charges {
		if err := t.insertCharge(ctx, ch); err != nil {
			return err
		}
	}

	for _, dc := range g.DiscountCodes {
		if err := t.insertDiscountCode(ctx, dc); err != nil {
			return err
		}
	}

	for _, ad := range g.AppliedDiscounts {
		if err := t.insertAppliedDiscount(ctx, ad.Discount); err != nil {
			return err
		}
		for _, target := range ad.Targets {
			if err := t.insertAppliedDiscountTarget(ctx, target); err != nil {
				return err
			}
		}
	}

	return nil
}

func (t *Tx) upsertOrder(ctx context.Context, o OrderRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO orders (
			id, store_id, event_id, reference_order_gid, reference_order_name,
			placed_at, currency, channel, subtotal, discount, total, note,
			source, source_id, version, weight, is_manual, is_test, risk,
			tax_included, discount_code, discount_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID, o.StoreID, o.EventID, o.ReferenceOrderGID, o.ReferenceOrderName,
		o.PlacedAt, o.Currency, o.Channel, o.Subtotal, o.Discount, o.Total, o.Note,
		o.Source, o.SourceID, o.Version, o.Weight, o.IsManual, o.IsTest, o.Risk,
		o.TaxIncluded, o.DiscountCode, o.DiscountType,
	)
	if err != nil {
		return fmt.Errorf("upsert order %s: %w", o.ID, err)
	}
	return nil
}

func (t *Tx) insertCustomerDetails(ctx context.Context, c CustomerDetailsRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO customer_details (order_id, email, first_name, last_name, customer_reference)
		VALUES (?, ?, ?, ?, ?)
	`,
		c.OrderID, c.Email, c.FirstName, c.LastName, c.CustomerReference,
	)
	if err != nil {
		return fmt.Errorf("insert customer details for order %s: %w", c.OrderID, err)
	}
	return nil
}

func (t *Tx) insertAddress(ctx context.Context, a AddressRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO addresses (
			type, order_id, first_name, last_name, company, phone,
			line1, line2, line3, city, county, country, postcode
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.Type, a.OrderID, a.FirstName, a.LastName, a.Company, a.Phone,
		a.Line1, a.Line2, a.Line3, a.City, a.County, a.Country, a.Postcode,
	)
	if err != nil {
		return fmt.Errorf("insert %s address for order %s: %w", a.Type, a.OrderID, err)
	}
	return nil
}

func (t *Tx) insertLineItem(ctx context.Context, li LineItemRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO line_items (
			id, order_id, product_id, variant_id, sku, quantity, pricing_quantity,
			reference, reference_line_item_gid, parent_line_item_id, group_identifier,
			weight, subtotal, discount, total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		li.ID, li.OrderID, li.ProductID, li.VariantID, li.SKU, li.Quantity, li.PricingQuantity,
		li.Reference, li.ReferenceLineItemGID, li.ParentLineItemID, li.GroupIdentifier,
		li.Weight, li.Subtotal, li.Discount, li.Total,
	)
	if err != nil {
		return fmt.Errorf("insert line item %s: %w", li.ID, err)
	}
	return nil
}

func (t *Tx) insertTaxLine(ctx context.Context, tl TaxLineRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO tax_lines (
			id, parent_type, parent_id, name, rate, rate_type, amount, currency, reference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tl.ID, tl.ParentType, tl.ParentID, tl.Name, tl.Rate,
		tl.RateType, tl.Amount, tl.Currency, tl.Reference,
	)
	if err != nil {
		return fmt.Errorf("insert tax line %s: %w", tl.ID, err)
	}
	return nil
}

func (t *Tx) insertShippingLine(ctx context.Context, sl ShippingLineRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO shipping_lines (
			id, order_id, name, handle, reference, amount, currency
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sl.ID, sl.OrderID, sl.Name, sl.Handle, sl.Reference, sl.Amount, sl.Currency,
	)
	if err != nil {
		return fmt.Errorf("insert shipping line %s: %w", sl.ID, err)
	}
	return nil
}

func (t *Tx) insertCharge(ctx context.Context, c ChargeRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO charges (
			id, order_id, gateway, gateway_reference, gateway_payment_method_reference,
			payment_method_id, reference, status, amount, currency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.OrderID, c.Gateway, c.GatewayReference, c.GatewayPaymentMethodReference,
		c.PaymentMethodID, c.Reference, c.Status, c.Amount, c.Currency,
	)
	if err != nil {
		return fmt.Errorf("insert charge %s: %w", c.ID, err)
	}
	return nil
}

func (t *Tx) insertDiscountCode(ctx context.Context, dc DiscountCodeRow) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO discount_codes (order_id, code) VALUES (?, ?)",
		dc.OrderID, dc.Code,
	)
	if err != nil {
		return fmt.Errorf("insert discount code for order %s: %w", dc.OrderID, err)
	}
	return nil
}

func (t *Tx) insertAppliedDiscount(ctx context.Context, d AppliedDiscountRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO applied_discounts (
			id, order_id, amount, code, reference, title, type, value
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.ID, d.OrderID, d.Amount, d.Code, d.Reference, d.Title, d.Type, d.Value,
	)
	if err != nil {
		return fmt.Errorf("insert applied discount %s: %w", d.ID, err)
	}
	return nil
}

func (t *Tx) insertAppliedDiscountTarget(ctx context.Context, dt AppliedDiscountTargetRow) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO applied_discount_targets (
			discount_id, target_type, variant_product_id, variant_variant_id
		) VALUES (?, ?, ?, ?)
	`,
		dt.DiscountID, dt.TargetType, dt.VariantProductID, dt.VariantVariantID,
	)
	if err != nil {
		return fmt.Errorf("insert applied discount target for %s: %w", dt.DiscountID, err)
	}
	return nil
}
