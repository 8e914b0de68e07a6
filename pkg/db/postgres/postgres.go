package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f1log/stint-analyzer-go/log"
)

type PoolConfigOption func(cfg *pgxpool.Config)

// WithTracer logs every executed statement on the given level.
func WithTracer(logger *log.Logger, level log.Level) PoolConfigOption {
	return func(cfg *pgxpool.Config) {
		cfg.ConnConfig.Tracer = &queryTracer{log: logger, level: level}
	}
}

// InitWithURL creates a connection pool and verifies connectivity.
func InitWithURL(url string, opts ...PoolConfigOption) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(dbConfig)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type queryTracer struct {
	log   *log.Logger
	level log.Level
}

func (tracer *queryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	if tracer.level == log.DebugLevel {
		tracer.log.Debug("Executing",
			log.String("sql", data.SQL),
			log.Any("args", data.Args))
	}
	return ctx
}

func (tracer *queryTracer) TraceQueryEnd(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
}
