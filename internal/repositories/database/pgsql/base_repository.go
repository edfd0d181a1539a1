package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_backend/internal/middleware"
	"github.com/SscSPs/docflow_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if tx == nil {
		return nil
	}
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// translateError maps driver errors onto the application's sentinel errors.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s already exists (%s): %w", what, pgErr.ConstraintName, apperrors.ErrDuplicate)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s violates reference %s: %w", what, pgErr.ConstraintName, apperrors.ErrInvalidState)
		}
	}
	return apperrors.NewAppError(500, "database failure on "+what, err)
}

// expectAffected turns a zero-row write into ErrNotFound.
func expectAffected(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}

// keysetQuery appends the partner filter, the (created_at, id) cursor, ordering and the
// limit to a SELECT. One extra row is requested to detect a following page.
func keysetQuery(selectSQL, idColumn string, filter portsrepo.ListFilter, byPartner bool) (string, []any, int, error) {
	limit := pagination.NormalizeLimit(filter.Limit)

	var conds []string
	var args []any
	if byPartner && filter.PartnerID != nil && *filter.PartnerID != "" {
		args = append(args, *filter.PartnerID)
		conds = append(conds, fmt.Sprintf("partner_id = $%d", len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return "", nil, 0, fmt.Errorf("invalid nextToken: %v: %w", err, apperrors.ErrValidation)
		}
		args = append(args, lastCreatedAt, lastID)
		conds = append(conds, fmt.Sprintf("(created_at, %s) < ($%d, $%d)", idColumn, len(args)-1, len(args)))
	}

	query := selectSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, %s DESC LIMIT $%d", idColumn, len(args))
	return query, args, limit, nil
}

// collectPage scans a keyset page, converts rows and computes the next token. Rows that
// fail to convert are logged and skipped; they still count towards the page boundary.
func collectPage[M any, D any](
	ctx context.Context,
	rows pgx.Rows,
	limit int,
	key func(M) (time.Time, string),
	toDomain func(M) (D, error),
) ([]D, *string, error) {
	defer rows.Close()
	modelRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to collect rows", err)
	}

	var next *string
	if len(modelRows) > limit {
		createdAt, id := key(modelRows[limit-1])
		token := pagination.EncodeToken(createdAt, id)
		next = &token
		modelRows = modelRows[:limit]
	}

	out := make([]D, 0, len(modelRows))
	for _, m := range modelRows {
		d, err := toDomain(m)
		if err != nil {
			_, id := key(m)
			middleware.GetLoggerFromCtx(ctx).Warn("Skipping malformed row",
				slog.String("id", id), slog.String("error", err.Error()))
			continue
		}
		out = append(out, d)
	}
	return out, next, nil
}

// collectCounts reads (status, count) pairs.
func collectCounts(rows pgx.Rows) (portsrepo.StatusCounts, error) {
	defer rows.Close()
	counts := portsrepo.StatusCounts{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status counts", err)
	}
	return counts, nil
}
