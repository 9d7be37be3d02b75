// Package llm holds telemetry shared by the remote text-generation clients.
package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type llmMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var metricsInit = false
var metrics llmMetrics

func ensureMetrics() {
	if metricsInit {
		return
	}
	meter := otel.Meter("github.com/careloop/backend/llm")

	requestCount, err := meter.Int64Counter(
		"llm.request.count",
		metric.WithDescription("Number of remote text-generation requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"llm.request.duration",
		metric.WithDescription("Remote text-generation request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"llm.request.errors",
		metric.WithDescription("Number of remote text-generation request errors"),
	)
	if err != nil {
		return
	}

	metrics = llmMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	metricsInit = true
}

// RecordRequest records one remote call's outcome.
func RecordRequest(ctx context.Context, provider, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
