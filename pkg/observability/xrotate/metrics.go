package xrotate

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/xboot/xrotate"

	metricRotations        = "xboot.log.rotations"
	metricRotationFailures = "xboot.log.rotation_failures"
	metricBytesWritten     = "xboot.log.bytes_written"
)

// rollMetrics Roller 的 OTel 指标
type rollMetrics struct {
	rotations metric.Int64Counter
	failures  metric.Int64Counter
	bytes     metric.Int64Counter
}

func newRollMetrics(provider metric.MeterProvider) (*rollMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(instrumentationName)

	rotations, err := meter.Int64Counter(metricRotations,
		metric.WithDescription("log file set rotations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xrotate: create counter %s: %w", metricRotations, err)
	}
	failures, err := meter.Int64Counter(metricRotationFailures,
		metric.WithDescription("failed log file set rotations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xrotate: create counter %s: %w", metricRotationFailures, err)
	}
	bytes, err := meter.Int64Counter(metricBytesWritten,
		metric.WithDescription("bytes written to log files"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("xrotate: create counter %s: %w", metricBytesWritten, err)
	}
	return &rollMetrics{rotations: rotations, failures: failures, bytes: bytes}, nil
}

func (m *rollMetrics) rotated(trigger Trigger, err error) {
	attrs := metric.WithAttributes(attribute.String("trigger", trigger.String()))
	if err != nil {
		m.failures.Add(context.Background(), 1, attrs)
		return
	}
	m.rotations.Add(context.Background(), 1, attrs)
}

func (m *rollMetrics) wrote(category Category, n int) {
	m.bytes.Add(context.Background(), int64(n),
		metric.WithAttributes(attribute.String("category", categoryLabel(category))))
}

// categoryLabel 默认分类在指标中显示为 "default"
func categoryLabel(c Category) string {
	if c == CategoryDefault {
		return "default"
	}
	return string(c)
}
