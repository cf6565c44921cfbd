package sheets

import (
	"context"

	"kasa/internal/core"
)

// SnapshotSource is the read port to the spreadsheet: one call fetches
// all three ranges. There are no retries and no partial reads; a
// failed fetch surfaces as a single error and blanks every derived
// view.
type SnapshotSource interface {
	Fetch(ctx context.Context) (core.RawSnapshot, error)
}
