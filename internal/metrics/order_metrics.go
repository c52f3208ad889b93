package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 注文作成の失敗理由（ラベル値）
const (
	ReasonValidation        = "validation"
	ReasonCustomerNotFound  = "customer_not_found"
	ReasonProductsNotFound  = "products_not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonStockConflict     = "stock_conflict"
	ReasonInternal          = "internal"
)

// OrderMetrics は注文作成のメトリクス。
// nilのままでも呼び出せる（何も記録しない）。
type OrderMetrics struct {
	ordersCreated  prometheus.Counter
	orderFailures  *prometheus.CounterVec
	unitsReserved  prometheus.Counter
	createDuration prometheus.Histogram
}

// NewOrderMetrics はregistererに登録済みのメトリクスを返す。nilならDefaultRegisterer。
func NewOrderMetrics(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "marketplace_orders_created_total",
			Help: "Total number of orders created",
		}),
		orderFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "marketplace_order_failures_total",
			Help: "Total number of rejected or failed order creations by reason",
		}, []string{"reason"}),
		unitsReserved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "marketplace_stock_units_reserved_total",
			Help: "Total number of product units reserved by created orders",
		}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "marketplace_create_order_duration_seconds",
			Help:    "Duration of the order creation workflow in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// 注文作成成功と予約した数量を記録
func (m *OrderMetrics) RecordOrderCreated(units int64) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.unitsReserved.Add(float64(units))
}

func (m *OrderMetrics) RecordOrderFailed(reason string) {
	if m == nil {
		return
	}
	m.orderFailures.WithLabelValues(reason).Inc()
}

func (m *OrderMetrics) RecordDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.createDuration.Observe(d.Seconds())
}
