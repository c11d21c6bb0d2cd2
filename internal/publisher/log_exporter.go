package publisher

import (
	"context"

	"github.com/fjod/cozy_storefront/internal/domain"
	"go.uber.org/zap"
)

// LogExporter writes the export document to the log. Used when no brokers
// are configured.
type LogExporter struct {
	logger *zap.Logger
}

func NewLogExporter(logger *zap.Logger) *LogExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogExporter{logger: logger}
}

func (e *LogExporter) Export(_ context.Context, doc domain.OrderExport) error {
	if doc.OrderNumber == "" {
		return ErrMissingOrderNumber
	}
	e.logger.Info("order export",
		zap.String("order_number", doc.OrderNumber),
		zap.Int("items_count", doc.ItemsCount),
		zap.String("total_price", doc.TotalPrice.String()),
		zap.String("delivery_type", string(doc.DeliveryType)),
		zap.String("payment_method", string(doc.PaymentMethod)),
		zap.String("customer", doc.ContactData.Name))
	return nil
}
