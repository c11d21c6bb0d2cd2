package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrMissingOrderNumber = errors.New("export document has no order number")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaExporter publishes export documents keyed by order number so every
// document for one order lands on the same partition.
type KafkaExporter struct {
	writer messageWriter
	logger *zap.Logger
}

func NewKafkaExporter(logger *zap.Logger, brokers ...string) *KafkaExporter {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  ExportTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
	return newKafkaExporter(w, logger)
}

func newKafkaExporter(w messageWriter, logger *zap.Logger) *KafkaExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaExporter{writer: w, logger: logger}
}

func (e *KafkaExporter) Export(ctx context.Context, doc domain.OrderExport) error {
	if doc.OrderNumber == "" {
		return ErrMissingOrderNumber
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal export document: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(doc.OrderNumber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(exportEventType)},
		},
	}
	if err := e.writer.WriteMessages(ctx, msg); err != nil {
		e.logger.Warn("failed to publish order export",
			zap.String("order_number", doc.OrderNumber), zap.Error(err))
		return fmt.Errorf("publish order export: %w", err)
	}

	e.logger.Info("order export published", zap.String("order_number", doc.OrderNumber))
	return nil
}

func (e *KafkaExporter) Close() error {
	return e.writer.Close()
}
