package queue

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type queueMetrics struct {
	retryCount metric.Int64Counter
	pacingWait metric.Float64Histogram
}

var queueMetricsInit = false
var metrics queueMetrics

func ensureQueueMetrics() {
	if queueMetricsInit {
		return
	}
	meter := otel.Meter("github.com/careloop/backend/queue")

	retryCount, err := meter.Int64Counter(
		"llm.queue.retry.count",
		metric.WithDescription("Number of throttled attempts retried by the outbound queue"),
	)
	if err != nil {
		return
	}
	pacingWait, err := meter.Float64Histogram(
		"llm.queue.pacing.wait",
		metric.WithDescription("Time spent waiting for the inter-request gap in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	metrics = queueMetrics{
		retryCount: retryCount,
		pacingWait: pacingWait,
	}
	queueMetricsInit = true
}

func recordRetry(ctx context.Context, attempt int) {
	ensureQueueMetrics()
	if !queueMetricsInit {
		return
	}
	metrics.retryCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("llm.queue.attempt", attempt),
	))
}

func recordPacingWait(ctx context.Context, wait time.Duration) {
	ensureQueueMetrics()
	if !queueMetricsInit {
		return
	}
	metrics.pacingWait.Record(ctx, float64(wait.Milliseconds()))
}
