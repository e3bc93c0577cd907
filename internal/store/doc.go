// Package store provides SQLite-backed storage for ingested order events.
//
// The schema normalizes one event payload into:
//   - events: one row per ingested record (surrogate id, created_at)
//   - stores: upserted by external id
//   - orders: upserted by external id, referencing store and event
//   - order children: customer_details, addresses, line_items, shipping_lines,
//     tax_lines, charges, discount_codes, applied_discounts,
//     applied_discount_targets
//
// # Write Semantics
//
// stores and orders use INSERT OR REPLACE. Replacing an order does not touch
// its children, so re-ingesting an order appends surrogate-keyed children
// (addresses, discount codes, discount targets) a second time and fails with a
// UNIQUE constraint error on externally keyed ones (line items, tax lines,
// shipping lines, charges, applied discounts, customer details).
//
// tax_lines hold a polymorphic parent: parent_type is "line_item" or
// "shipping_line" and parent_id is that row's id.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=OFF: Insertion order keeps parents ahead of children
//
// The schema is created with CREATE TABLE IF NOT EXISTS on every Open and
// committed as one transaction. There is no versioning.
package store
