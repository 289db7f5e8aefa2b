package metrics

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	FILL_TTL = time.Minute * 10
)

type SettlementMetrics struct {
	*HostMetrics
	attributes []attribute.KeyValue
	opts       metric.MeasurementOption

	ordersCounter    metric.Int64Counter
	volumeCounter    metric.Float64Counter
	feesCounter      metric.Float64Counter
	liquidityCounter metric.Float64Counter

	fillTimeHistogram  metric.Float64Histogram
	pendingFillsGauge  metric.Int64ObservableGauge
	fillStartTimeCache *ttlcache.Cache[string, time.Time]
}

// NewSettlementMetrics initializes metrics of the settlement engine. Every
// measurement is labeled with the environment, service id and version.
func NewSettlementMetrics(ctx context.Context, meter metric.Meter, env, id, version string, fillTTL time.Duration) (*SettlementMetrics, error) {
	attributes := []attribute.KeyValue{
		attribute.String("env", env),
		attribute.String("serviceid", id),
		attribute.String("version", version),
	}
	opts := metric.WithAttributes(attributes...)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	ordersCounter, err := meter.Int64Counter(
		"settlement.Orders",
		metric.WithDescription("Number of orders by lifecycle status"))
	if err != nil {
		return nil, err
	}
	volumeCounter, err := meter.Float64Counter(
		"settlement.OrderVolume",
		metric.WithDescription("Deposited amount of created orders"))
	if err != nil {
		return nil, err
	}
	feesCounter, err := meter.Float64Counter(
		"settlement.FeesClaimed",
		metric.WithDescription("Claimed fees by fee type"))
	if err != nil {
		return nil, err
	}
	liquidityCounter, err := meter.Float64Counter(
		"settlement.LiquidityRemoved",
		metric.WithDescription("Bridge liquidity removed by orchestrators"))
	if err != nil {
		return nil, err
	}
	fillTimeHistogram, err := meter.Float64Histogram(
		"settlement.FillTime",
		metric.WithDescription("Seconds between the two fill phases of an order"))
	if err != nil {
		return nil, err
	}

	if fillTTL == 0 {
		fillTTL = FILL_TTL
	}
	m := &SettlementMetrics{
		HostMetrics:        hostMetrics,
		attributes:         attributes,
		opts:               opts,
		ordersCounter:      ordersCounter,
		volumeCounter:      volumeCounter,
		feesCounter:        feesCounter,
		liquidityCounter:   liquidityCounter,
		fillTimeHistogram:  fillTimeHistogram,
		fillStartTimeCache: ttlcache.New(ttlcache.WithTTL[string, time.Time](fillTTL)),
	}
	m.pendingFillsGauge, err = meter.Int64ObservableGauge(
		"settlement.PendingFills",
		metric.WithDescription("Fills started within the fill TTL that did not finish yet"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(int64(m.PendingFills()), opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SettlementMetrics) TrackOrderCreated(amount uint64) {
	m.ordersCounter.Add(context.Background(), 1, m.with(attribute.String("status", "created")))
	m.volumeCounter.Add(context.Background(), float64(amount), m.opts)
}

func (m *SettlementMetrics) TrackOrderReverted(amount uint64) {
	m.ordersCounter.Add(context.Background(), 1, m.with(attribute.String("status", "reverted")))
}

func (m *SettlementMetrics) TrackFeesClaimed(feeType string, amount uint64) {
	m.feesCounter.Add(context.Background(), float64(amount), m.with(attribute.String("feetype", feeType)))
}

func (m *SettlementMetrics) TrackLiquidityRemoved(amount uint64) {
	m.liquidityCounter.Add(context.Background(), float64(amount), m.opts)
}

func (m *SettlementMetrics) StartFill(orderHash string) {
	m.fillStartTimeCache.Set(orderHash, time.Now(), ttlcache.DefaultTTL)
}

func (m *SettlementMetrics) EndFill(orderHash string) {
	m.ordersCounter.Add(context.Background(), 1, m.with(attribute.String("status", "filled")))

	startTime := m.fillStartTimeCache.Get(orderHash)
	if startTime == nil {
		log.Warn().Msgf("Fill start time of order %s not found", orderHash)
		return
	}
	m.fillStartTimeCache.Delete(orderHash)

	m.fillTimeHistogram.Record(context.Background(), time.Since(startTime.Value()).Seconds(), m.opts)
}

// AbortFill drops the fill start time of a reverted order without recording
// a fill time.
func (m *SettlementMetrics) AbortFill(orderHash string) {
	m.fillStartTimeCache.Delete(orderHash)
}

// PendingFills returns the number of fills that started within the fill TTL
// and did not finish yet.
func (m *SettlementMetrics) PendingFills() int {
	m.fillStartTimeCache.DeleteExpired()
	return m.fillStartTimeCache.Len()
}

func (m *SettlementMetrics) with(attributes ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(append(append([]attribute.KeyValue{}, m.attributes...), attributes...)...)
}
