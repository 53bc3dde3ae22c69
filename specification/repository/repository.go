package repository

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	s "github.com/krew-solutions/specification-go/specification/domain"
	infra "github.com/krew-solutions/specification-go/specification/infrastructure"
)

// Repository pushes specification filtering down to PostgreSQL: the rule's
// expression tree compiles into the WHERE clause, so only matching rows
// cross the wire. The repository never falls back to in-memory filtering;
// an untranslatable specification is reported as an error.
type Repository[T any] struct {
	pool    *pgxpool.Pool
	table   string
	columns []string
	scan    pgx.RowToFunc[T]
	schema  *infra.SchemaRegistry
	log     *zap.Logger
}

type Option[T any] func(*Repository[T])

// WithLogger attaches a structured logger; queries are logged at debug
// level with a per-query ulid for correlation.
func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(r *Repository[T]) {
		r.log = log
	}
}

// WithSchema maps collection fields of T onto child tables for wildcard
// compilation.
func WithSchema[T any](schema *infra.SchemaRegistry) Option[T] {
	return func(r *Repository[T]) {
		r.schema = schema
	}
}

// New builds a repository for one table. scan converts a result row into T,
// typically pgx.RowToStructByName[T].
func New[T any](pool *pgxpool.Pool, table string, columns []string, scan pgx.RowToFunc[T], opts ...Option[T]) (*Repository[T], error) {
	if table == "" {
		return nil, errors.New("repository table must not be empty")
	}
	if len(columns) == 0 {
		return nil, errors.New("repository needs at least one column")
	}
	if scan == nil {
		return nil, errors.New("repository needs a row scan function")
	}
	r := &Repository[T]{
		pool:    pool,
		table:   table,
		columns: columns,
		scan:    scan,
		log:     zap.NewNop(),
	}
	for i := range opts {
		opts[i](r)
	}
	return r, nil
}

// BuildQuery renders the SELECT for a specification without executing it.
// Pure; exposed for callers that run statements through their own session.
func (r *Repository[T]) BuildQuery(spec s.Specification[T]) (sql string, params []any, err error) {
	where, params, err := infra.Compile(spec.Expression(), infra.WithSchema(r.schema))
	if err != nil {
		return "", nil, errors.Wrapf(err, "compile specification %q", spec.Name())
	}
	sql = "SELECT " + strings.Join(r.columns, ", ") + " FROM " + r.table + " WHERE " + where
	return sql, params, nil
}

// Find returns all rows satisfying the specification.
func (r *Repository[T]) Find(ctx context.Context, spec s.Specification[T]) ([]T, error) {
	sql, params, err := r.BuildQuery(spec)
	if err != nil {
		return nil, err
	}

	queryID := ulid.Make().String()
	start := time.Now()

	rows, err := r.pool.Query(ctx, sql, params...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s for specification %q", r.table, spec.Name())
	}
	items, err := pgx.CollectRows(rows, r.scan)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s rows for specification %q", r.table, spec.Name())
	}

	r.log.Debug("specification query",
		zap.String("query_id", queryID),
		zap.String("specification", spec.Name()),
		zap.String("sql", sql),
		zap.Int("params", len(params)),
		zap.Int("rows", len(items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return items, nil
}

// Count returns the number of rows satisfying the specification.
func (r *Repository[T]) Count(ctx context.Context, spec s.Specification[T]) (int64, error) {
	where, params, err := infra.Compile(spec.Expression(), infra.WithSchema(r.schema))
	if err != nil {
		return 0, errors.Wrapf(err, "compile specification %q", spec.Name())
	}
	sql := "SELECT count(*) FROM " + r.table + " WHERE " + where

	queryID := ulid.Make().String()
	start := time.Now()

	var count int64
	if err := r.pool.QueryRow(ctx, sql, params...).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "count %s for specification %q", r.table, spec.Name())
	}

	r.log.Debug("specification count",
		zap.String("query_id", queryID),
		zap.String("specification", spec.Name()),
		zap.String("sql", sql),
		zap.Int64("count", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return count, nil
}

// Atomic runs callback inside a transaction. Rollback failures are attached
// to the original error.
func (r *Repository[T]) Atomic(ctx context.Context, callback func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to start transaction")
	}

	if err := callback(tx); err != nil {
		if txErr := tx.Rollback(ctx); txErr != nil {
			return multierror.Append(err, txErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}
