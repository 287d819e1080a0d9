package store

import (
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TheJisus28/bookstore-api/pkg/logger"
	"github.com/TheJisus28/bookstore-api/pkg/metrics"
	"github.com/TheJisus28/bookstore-api/pkg/tracing"
)

const (
	observerName     = "bookstore:query_observer"
	observerStartKey = "observer:start"
	observerSpanKey  = "observer:span"
)

// registrar GORM回调注册点（callback.Before/After的返回值）
type registrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// QueryObserver GORM插件：每条SQL输出一条结构化日志、一次耗时观测和一个span
// 调用方的查询方式不变
type QueryObserver struct {
	log       *zap.Logger
	slow      time.Duration
	logParams bool
}

// NewQueryObserver 创建查询观察插件，slow<=0时不区分慢查询
func NewQueryObserver(log *zap.Logger, slow time.Duration, logParams bool) *QueryObserver {
	return &QueryObserver{log: log.Named("sql"), slow: slow, logParams: logParams}
}

// Name 实现gorm.Plugin
func (o *QueryObserver) Name() string {
	return observerName
}

// Initialize 在每类操作的GORM主回调前后注册钩子
func (o *QueryObserver) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op            string
		before, after registrar
	}{
		{"create", cb.Create().Before("gorm:create"), cb.Create().After("gorm:create")},
		{"query", cb.Query().Before("gorm:query"), cb.Query().After("gorm:query")},
		{"update", cb.Update().Before("gorm:update"), cb.Update().After("gorm:update")},
		{"delete", cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete")},
		{"row", cb.Row().Before("gorm:row"), cb.Row().After("gorm:row")},
		{"raw", cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw")},
	}

	for _, h := range hooks {
		if err := h.before.Register("observer:before_"+h.op, o.before(h.op)); err != nil {
			return err
		}
		if err := h.after.Register("observer:after_"+h.op, o.after(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func (o *QueryObserver) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx, span := tracing.StartSpan(db.Statement.Context, "db."+op,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(semconv.DBSystemKey.String(db.Dialector.Name())),
		)
		db.Statement.Context = ctx
		db.InstanceSet(observerSpanKey, span)
		db.InstanceSet(observerStartKey, time.Now())
	}
}

func (o *QueryObserver) after(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(observerStartKey)
		if !ok {
			return
		}
		elapsed := time.Since(v.(time.Time))

		sql := db.Statement.SQL.String()
		table := db.Statement.Table
		err := db.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}

		if s, ok := db.InstanceGet(observerSpanKey); ok {
			span := s.(trace.Span)
			span.SetAttributes(
				semconv.DBStatementKey.String(sql),
				semconv.DBSQLTableKey.String(table),
				attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
			)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}

		metrics.ObserveHistogramVec(metrics.DBQueryDuration,
			map[string]string{"operation": op, "table": table}, elapsed.Seconds())
		if err != nil {
			metrics.IncCounterVec(metrics.DBQueryErrorsTotal, map[string]string{"operation": op})
		}

		fields := append(logger.ContextFields(db.Statement.Context),
			zap.String("operation", op),
			zap.String("sql", sql),
			zap.Int64("rows", db.Statement.RowsAffected),
			zap.Duration("duration", elapsed),
		)
		if o.logParams {
			fields = append(fields, zap.Any("params", db.Statement.Vars))
		}

		switch {
		case err != nil:
			o.log.Error("query failed", append(fields, zap.Error(err))...)
		case o.slow > 0 && elapsed >= o.slow:
			o.log.Warn("slow query", append(fields, zap.Duration("threshold", o.slow))...)
		default:
			o.log.Debug("query", fields...)
		}
	}
}
