// Package ingest maps order event records into the store.
//
// Input is a JSON array of {"event_name", "event_payload"} records. Files that
// are a bare comma-joined run of objects are accepted: RepairFraming adds the
// missing brackets before parsing.
//
// Per record, inside one transaction:
//  1. skip silently if event_name or event_payload is missing or empty
//  2. insert the event row
//  3. upsert payload.store
//  4. map payload.order (only under a store) and write it with its children
//
// Run is the single failure boundary. The first error ends the run, and
// records committed before it remain in the database.
package ingest
