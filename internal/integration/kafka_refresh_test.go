//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/kafka"
	"github.com/couchcryptid/marine-bulletin-service/internal/config"
	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

const testRefreshTopic = "test-bulletin-refreshed"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("marine-bulletin-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublisherRefreshEvents verifies one message per language outcome
// reaches the topic with its key and headers.
func TestPublisherRefreshEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testRefreshTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaRefreshTopic: testRefreshTopic,
	}
	publisher := kafka.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	issued := "2026-02-03T04:00:00Z"
	refreshedAt := time.Date(2026, 2, 3, 5, 0, 0, 0, time.UTC)
	events := []domain.RefreshEvent{
		{RunID: "run-42", Lang: domain.LangDE, OK: true, Title: "Seewetterbericht", IssuedAt: &issued, RefreshedAt: refreshedAt},
		{RunID: "run-42", Lang: domain.LangEN, OK: false, Error: "bulletin: upstream status 503", RefreshedAt: refreshedAt},
	}
	require.NoError(t, publisher.PublishRefresh(ctx, events))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testRefreshTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := make(map[string]domain.RefreshEvent)
	headers := make(map[string]map[string]string)
	for len(got) < len(events) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read refresh event")

		var ev domain.RefreshEvent
		require.NoError(t, json.Unmarshal(msg.Value, &ev))
		got[string(msg.Key)] = ev
		h := make(map[string]string, len(msg.Headers))
		for _, hdr := range msg.Headers {
			h[hdr.Key] = string(hdr.Value)
		}
		headers[string(msg.Key)] = h
	}

	assert.True(t, got["de"].OK)
	assert.Equal(t, "Seewetterbericht", got["de"].Title)
	assert.Equal(t, "ok", headers["de"]["outcome"])
	assert.Equal(t, "run-42", headers["de"]["run_id"])

	assert.False(t, got["en"].OK)
	assert.Equal(t, "failed", headers["en"]["outcome"])
	assert.Contains(t, got["en"].Error, "503")
}
