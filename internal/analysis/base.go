package analysis

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a calculator.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	historySize int
	now         func() time.Time
}

// WithLogger sets the logger used for validation warnings and calculation logs.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHistorySize sets how many calculations are retained.
func WithHistorySize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historySize = n
		}
	}
}

// WithClock sets the time source used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Base carries the state every calculator shares: the validator with its
// warning list, the bounded history and the logger.
type Base struct {
	*Validator
	history *History
	logger  *zap.Logger
	now     func() time.Time
}

// NewBase builds the shared calculator state. name is attached to every log line.
func NewBase(name string, opts ...Option) Base {
	o := options{
		logger:      zap.NewNop(),
		historySize: DefaultHistorySize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With(zap.String("calculator", name))
	return Base{
		Validator: NewValidator(logger),
		history:   NewHistory(o.historySize),
		logger:    logger,
		now:       o.now,
	}
}

// Logger returns the calculator logger.
func (b *Base) Logger() *zap.Logger {
	return b.logger
}

// History returns the calculator's history buffer.
func (b *Base) History() *History {
	return b.history
}

// ClearHistory drops every retained calculation.
func (b *Base) ClearHistory() {
	b.history.Clear()
}

// AddQC stores the statistics of an output curve under key. An output curve
// without valid samples is recorded with zero valid points and a warning;
// it does not abort the calculation.
func (b *Base) AddQC(r *Result, key string, data []float64, name string) {
	r.QC[key] = b.stats(data, name)
}

// AddInputQC stores the statistics of an input curve under key.
func (b *Base) AddInputQC(r *Result, key string, data []float64, name string) {
	if data == nil {
		return
	}
	r.InputStats[key] = b.stats(data, name)
}

func (b *Base) stats(data []float64, name string) QCStats {
	s, err := Statistics(data, name)
	if err != nil {
		b.Warn("curve " + name + ": no valid values calculated")
	}
	return s
}

// Finish copies the current warnings into r and records r in the history.
func (b *Base) Finish(r *Result) {
	r.Warnings = b.Warnings()
	b.history.Add(HistoryEntry{
		ID:         uuid.New(),
		Timestamp:  b.now(),
		Type:       r.Type,
		Method:     r.Method,
		Parameters: maps.Clone(r.Parameters),
		QC:         maps.Clone(r.QC),
		Warnings:   append([]string(nil), r.Warnings...),
	})
	b.logger.Debug("calculation completed",
		zap.String("type", r.Type),
		zap.String("method", r.Method),
		zap.Int("warnings", len(r.Warnings)))
}
