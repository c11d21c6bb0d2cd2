package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafka(t *testing.T) string {
	if testing.Short() {
		t.Skip("skipping kafka container test in short mode")
	}
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func TestKafkaExporter_PublishesToBroker(t *testing.T) {
	broker := setupKafka(t)

	exp := NewKafkaExporter(nil, broker)
	defer exp.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// the first write may race topic auto-creation
	require.Eventually(t, func() bool {
		return exp.Export(ctx, sampleExport()) == nil
	}, 20*time.Second, time.Second)

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:  []string{broker},
		Topic:    ExportTopic,
		GroupID:  "export-test",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UR-123456", string(msg.Key))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &doc))
	assert.Equal(t, "UR-123456", doc["orderNumber"])
}
