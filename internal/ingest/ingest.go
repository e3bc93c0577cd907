package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/orderload/internal/store"
	"github.com/roach88/orderload/internal/tree"
)

// Stats counts what one ingestion pass did.
type Stats struct {
	Records  int `json:"records"`  // records seen, including skipped
	Ingested int `json:"ingested"` // records that wrote an event row
	Skipped  int `json:"skipped"`  // records without event_name or event_payload
	Orders   int `json:"orders"`   // orders written
}

// RepairFraming wraps bare comma-joined JSON objects in array brackets.
// Text already starting with '[' or ending with ']' is left alone on that side.
// Commas between objects are not checked or repaired.
func RepairFraming(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		trimmed = "[" + trimmed
	}
	if !strings.HasSuffix(trimmed, "]") {
		trimmed += "]"
	}
	return trimmed
}

// ParseRecords repairs the framing of data and parses it into records,
// in file order.
func ParseRecords(data []byte) ([]tree.Value, error) {
	v, err := tree.Parse([]byte(RepairFraming(string(data))))
	if err != nil {
		return nil, err
	}
	arr, ok := v.(tree.Array)
	if !ok {
		return nil, fmt.Errorf("parse records: top-level value is %T, not an array", v)
	}
	return arr, nil
}

// Ingester maps parsed event records into a store.
type Ingester struct {
	logger *slog.Logger
}

// NewIngester creates an Ingester. A nil logger uses slog.Default().
func NewIngester(logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{logger: logger}
}

// Ingest parses data and writes every record to st in file order.
//
// Each record is its own transaction. Ingest stops at the first error:
// records committed before it stay, the failing record is rolled back,
// and the remaining records are not processed.
func (in *Ingester) Ingest(ctx context.Context, st *store.Store, data []byte) (Stats, error) {
	var stats Stats

	records, err := ParseRecords(data)
	if err != nil {
		return stats, err
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Records++

		ok, wroteOrder, err := in.ingestRecord(ctx, st, rec)
		if err != nil {
			return stats, fmt.Errorf("record %d: %w", i, err)
		}
		if !ok {
			stats.Skipped++
			in.logger.Debug("skipped record", "index", i)
			continue
		}
		stats.Ingested++
		if wroteOrder {
			stats.Orders++
		}
	}

	return stats, nil
}

// ingestRecord writes one {event_name, event_payload} record.
// Returns ok=false, with nothing written, when the record has no name or payload.
func (in *Ingester) ingestRecord(ctx context.Context, st *store.Store, rec tree.Value) (ok, wroteOrder bool, err error) {
	obj, isObj := rec.(tree.Object)
	if !isObj || !obj.Present("event_name") || !obj.Present("event_payload") {
		return false, false, nil
	}
	name, isName := tree.Text(obj.Get("event_name"))
	payload, isPayload := obj.Object("event_payload")
	if !isName || !isPayload {
		return false, false, nil
	}

	err = st.WithTx(ctx, func(tx *store.Tx) error {
		eventID, err := tx.InsertEvent(ctx, name)
		if err != nil {
			return err
		}

		if !payload.Present("store") {
			return nil
		}
		storeObj, isStore := payload.Object("store")
		if !isStore {
			return nil
		}
		sr, err := mapStore(storeObj)
		if err != nil {
			return err
		}
		if err := tx.UpsertStore(ctx, sr); err != nil {
			return err
		}

		// Orders are only mapped under a present store
		if !payload.Present("order") {
			return nil
		}
		orderObj, isOrder := payload.Object("order")
		if !isOrder {
			return nil
		}
		g, err := mapOrder(orderObj, eventID, sr.ID)
		if err != nil {
			return err
		}
		if err := tx.WriteOrder(ctx, g); err != nil {
			return err
		}
		in.logger.Debug("wrote order",
			"event_id", eventID,
			"order_id", g.Order.ID,
			"rows", g.RowCounts(),
		)
		wroteOrder = true
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return true, wroteOrder, nil
}
