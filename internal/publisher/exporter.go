// Package publisher hands finished orders to the export collaborator.
package publisher

import (
	"context"

	"github.com/fjod/cozy_storefront/internal/domain"
)

const (
	ExportTopic     = "order-exports"
	eventTypeHeader = "event_type"
	exportEventType = "OrderExported"
)

// Exporter produces the printable order document. It has side effects
// only; nothing it does feeds back into checkout state.
type Exporter interface {
	Export(ctx context.Context, doc domain.OrderExport) error
}
