package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// str returns a valid NullString.
func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// num returns a valid NullInt64.
func num(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: true}
}

// createTestGraph creates an order graph touching every child table.
func createTestGraph(orderID string, eventID int64) *OrderGraph {
	return &OrderGraph{
		Order: OrderRow{
			ID:       orderID,
			StoreID:  "store-1",
			EventID:  eventID,
			Currency: str("GBP"),
			Subtotal: num(1000),
			Discount: num(200),
			Total:    num(800),
		},
		Customer: &CustomerDetailsRow{OrderID: orderID, Email: str("a@example.com")},
		Addresses: []AddressRow{
			{Type: AddressBilling, OrderID: orderID, City: str("London")},
			{Type: AddressShipping, OrderID: orderID, City: str("Leeds")},
		},
		LineItems: []LineItemGraph{{
			Item: LineItemRow{ID: orderID + "-li-1", OrderID: orderID, Quantity: num(2)},
			TaxLines: []TaxLineRow{
				{ID: orderID + "-tax-1", ParentType: ParentLineItem, ParentID: orderID + "-li-1", Amount: num(40)},
			},
		}},
		ShippingLines: []ShippingLineGraph{{
			Line: ShippingLineRow{ID: orderID + "-sl-1", OrderID: orderID, Amount: num(395)},
			TaxLines: []TaxLineRow{
				{ID: orderID + "-tax-2", ParentType: ParentShippingLine, ParentID: orderID + "-sl-1", Amount: num(66)},
			},
		}},
		Charges:       []ChargeRow{{ID: orderID + "-ch-1", OrderID: orderID, Amount: num(800)}},
		DiscountCodes: []DiscountCodeRow{{OrderID: orderID, Code: str("WELCOME")}},
		AppliedDiscounts: []AppliedDiscountGraph{{
			Discount: AppliedDiscountRow{ID: orderID + "-ad-1", OrderID: orderID, Amount: num(200)},
			Targets: []AppliedDiscountTargetRow{
				{DiscountID: orderID + "-ad-1", TargetType: str("variant"), VariantProductID: str("p1"), VariantVariantID: str("v1")},
			},
		}},
	}
}

// countRows returns the number of rows in table, failing the test on error.
func countRows(t *testing.T, s *Store, table string) int64 {
	t.Helper()
	n, err := s.Count(context.Background(), table)
	if err != nil {
		t.Fatalf("Count(%s) failed: %v", table, err)
	}
	return n
}
