package ledger

import "github.com/shopspring/decimal"

// MetricsCollector receives engine-level measurements.
type MetricsCollector interface {
	RecordTransaction(kind string, amount decimal.Decimal)
	RecordError(operation, errKind string)
	RecordRetry(operation string)
}

// NoopMetricsCollector is the default collector when none is wired.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransaction(string, decimal.Decimal) {}
func (NoopMetricsCollector) RecordError(string, string)                {}
func (NoopMetricsCollector) RecordRetry(string)                        {}
