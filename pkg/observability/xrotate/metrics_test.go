package xrotate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// sumByAttr 汇总指定指标中 key=value 的数据点
func sumByAttr(t *testing.T, rm metricdata.ResourceMetrics, name, key, value string) int64 {
	t.Helper()
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestRoller_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	dir := t.TempDir()
	clock := newFakeClock(time.Date(2024, 1, 2, 10, 30, 0, 0, testZone))
	flag := &RotationFlag{}
	cfg := NewRollConfig("app", metricsAndDefault(dir, dir))
	cfg.RollSize = 100

	r, err := NewRoller(cfg,
		WithClock(clock.Now),
		WithRotationFlag(flag),
		WithMeterProvider(provider),
		WithRollErrorHandler(func(error) {}),
	)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	require.NoError(t, r.Process([]Record{
		rec(CategoryMetrics, line(60, 'a')),
		rec(CategoryDefault, line(10, 'b')),
	}))

	// 同一分钟内信号轮转失败
	flag.Request()
	require.NoError(t, r.Process(nil))

	// 推进时钟后大小轮转成功
	clock.Advance(time.Minute)
	require.NoError(t, r.Process([]Record{rec(CategoryMetrics, line(60, 'c'))}))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(1), sumByAttr(t, rm, metricRotations, "trigger", "size"))
	assert.Equal(t, int64(1), sumByAttr(t, rm, metricRotationFailures, "trigger", "signal"))
	assert.Equal(t, int64(120), sumByAttr(t, rm, metricBytesWritten, "category", "METRICS"))
	assert.Equal(t, int64(10), sumByAttr(t, rm, metricBytesWritten, "category", "default"))
}
