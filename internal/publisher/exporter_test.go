package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func sampleExport() domain.OrderExport {
	return domain.OrderExport{
		OrderNumber: "UR-123456",
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "p2", Title: "Набор валиков для покраски", Price: decimal.NewFromInt(1490)}, Qty: 2},
		},
		TotalPrice:    decimal.NewFromInt(2980),
		ItemsCount:    2,
		ContactData:   domain.ContactInfo{Name: "Иван", Phone: "+7"},
		DeliveryType:  domain.DeliveryPickup,
		DeliveryData:  domain.DeliveryInfo{Method: domain.DeliveryPickup},
		PaymentMethod: domain.PaymentCash,
	}
}

func TestKafkaExporter_Export(t *testing.T) {
	w := &mockWriter{}
	exp := newKafkaExporter(w, nil)

	require.NoError(t, exp.Export(context.Background(), sampleExport()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "UR-123456", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "OrderExported", string(msg.Headers[0].Value))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &doc))
	assert.Equal(t, "UR-123456", doc["orderNumber"])
	assert.Equal(t, float64(2980), doc["totalPrice"])
	assert.Equal(t, float64(2), doc["itemsCount"])
	assert.Equal(t, "pickup", doc["deliveryType"])
	delivery, ok := doc["deliveryData"].(map[string]any)
	require.True(t, ok, "deliveryData is always present")
	assert.Equal(t, "pickup", delivery["method"])

	require.NoError(t, exp.Close())
	assert.True(t, w.closed)
}

func TestKafkaExporter_WriteError(t *testing.T) {
	exp := newKafkaExporter(&mockWriter{err: errors.New("broker down")}, nil)

	err := exp.Export(context.Background(), sampleExport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestExporters_RequireOrderNumber(t *testing.T) {
	doc := sampleExport()
	doc.OrderNumber = ""

	w := &mockWriter{}
	assert.ErrorIs(t, newKafkaExporter(w, nil).Export(context.Background(), doc), ErrMissingOrderNumber)
	assert.Empty(t, w.messages)
	assert.ErrorIs(t, NewLogExporter(nil).Export(context.Background(), doc), ErrMissingOrderNumber)
}

func TestLogExporter_Export(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	exp := NewLogExporter(zap.New(core))

	require.NoError(t, exp.Export(context.Background(), sampleExport()))

	entries := logs.FilterMessage("order export").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "UR-123456", fields["order_number"])
	assert.Equal(t, "2980", fields["total_price"])
}
