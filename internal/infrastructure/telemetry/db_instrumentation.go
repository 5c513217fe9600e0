package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBInstrumentationConfig configures GORM tracing and query metrics.
type DBInstrumentationConfig struct {
	TracingEnabled     bool
	LogFullSQL         bool          // keep bound variables in span statements
	SlowQueryThreshold time.Duration // 200ms when zero
	DBSystem           string        // "postgresql" when empty
}

func (c DBInstrumentationConfig) withDefaults() DBInstrumentationConfig {
	if c.SlowQueryThreshold <= 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
	if c.DBSystem == "" {
		c.DBSystem = "postgresql"
	}
	return c
}

// DBMetricsPlugin is a GORM plugin recording query counts, latency and slow
// queries, plus connection pool gauges. Queries slower than the threshold
// are also flagged on the active span.
type DBMetricsPlugin struct {
	config DBInstrumentationConfig
	meter  metric.Meter
	logger *zap.Logger

	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
}

// NewDBMetricsPlugin creates the plugin's instruments on meter.
func NewDBMetricsPlugin(meter metric.Meter, cfg DBInstrumentationConfig, logger *zap.Logger) (*DBMetricsPlugin, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &DBMetricsPlugin{config: cfg.withDefaults(), meter: meter, logger: logger}

	var err error
	if p.queryTotal, err = NewCounter(meter, "db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if p.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if p.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Queries slower than the slow query threshold", "{query}"); err != nil {
		return nil, err
	}
	return p, nil
}

// Name implements gorm.Plugin.
func (p *DBMetricsPlugin) Name() string {
	return "fr:db_metrics"
}

// Initialize implements gorm.Plugin.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	if err := registerAround(db, "fr_metrics", p.before, p.after); err != nil {
		return err
	}
	return p.registerPoolGauges(db)
}

func (p *DBMetricsPlugin) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, queryStartKey{}, time.Now())
}

func (p *DBMetricsPlugin) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	op := detectOperationType(db.Statement.SQL.String())
	table := db.Statement.Table
	if table == "" {
		table = "unknown"
	}

	p.queryTotal.Inc(ctx, AttrDBOperation.String(op))
	p.queryDuration.RecordDuration(ctx, elapsed, AttrDBOperation.String(op))

	if elapsed <= p.config.SlowQueryThreshold {
		return
	}
	p.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
	p.logger.Warn("Slow query",
		zap.String("operation", op),
		zap.String("table", table),
		zap.Duration("duration", elapsed),
	)
}

func (p *DBMetricsPlugin) registerPoolGauges(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	conns, err := p.meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}
	maxConns, err := p.meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}
	_, err = p.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		return nil
	}, conns, maxConns)
	return err
}

type queryStartKey struct{}

// registerAround registers before and after hooks around every GORM processor.
func registerAround(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register(prefix+":before_create", before),
		cb.Create().After("gorm:create").Register(prefix+":after_create", after),
		cb.Query().Before("gorm:query").Register(prefix+":before_query", before),
		cb.Query().After("gorm:query").Register(prefix+":after_query", after),
		cb.Update().Before("gorm:update").Register(prefix+":before_update", before),
		cb.Update().After("gorm:update").Register(prefix+":after_update", after),
		cb.Delete().Before("gorm:delete").Register(prefix+":before_delete", before),
		cb.Delete().After("gorm:delete").Register(prefix+":after_delete", after),
		cb.Row().Before("gorm:row").Register(prefix+":before_row", before),
		cb.Row().After("gorm:row").Register(prefix+":after_row", after),
		cb.Raw().Before("gorm:raw").Register(prefix+":before_raw", before),
		cb.Raw().After("gorm:raw").Register(prefix+":after_raw", after),
	)
}

func detectOperationType(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// InstrumentDatabase registers otelgorm when tracing is enabled and the
// metrics plugin when meter is non-nil.
func InstrumentDatabase(db *gorm.DB, cfg DBInstrumentationConfig, meter metric.Meter, logger *zap.Logger) error {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.TracingEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	if meter != nil {
		plugin, err := NewDBMetricsPlugin(meter, cfg, logger)
		if err != nil {
			return err
		}
		if err := db.Use(plugin); err != nil {
			return err
		}
	}

	logger.Info("Database instrumentation registered",
		zap.Bool("tracing", cfg.TracingEnabled),
		zap.Bool("metrics", meter != nil),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return nil
}
