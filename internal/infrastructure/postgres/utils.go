package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/beanscene-api/internal/domain"
)

// Querier contrato mínimo común a *pgxpool.Pool, *pgx.Conn y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isUnavailable detecta timeouts, cancelaciones y fallas de conexión (transitorios).
func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		pgconn.Timeout(err) ||
		errors.As(err, &connErr)
}

// wrapErr traduce errores de pgx a la taxonomía de dominio.
func wrapErr(op, table string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isUnavailable(err):
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, op, table, err)
	default:
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
}
