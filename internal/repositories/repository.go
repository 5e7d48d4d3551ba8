package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/types"
)

// querier: общее подмножество pgxpool.Pool и pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// psql: построитель запросов с плейсхолдерами $1, $2 ...
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// selectMany выполняет запрос и собирает строки в срез структур по тегам db.
func selectMany[T any](ctx context.Context, q querier, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования: %w", err)
	}
	return items, nil
}

// selectOne возвращает одну строку или apperrors.ErrNotFound.
func selectOne[T any](ctx context.Context, q querier, b sq.Sqlizer) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования: %w", err)
	}
	return item, nil
}

func exec(ctx context.Context, q querier, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func count(ctx context.Context, q querier, b sq.SelectBuilder) (uint64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	var total uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// applySort добавляет сортировку только по разрешённым полям.
func applySort(b sq.SelectBuilder, filter types.Filter, allowed map[string]string, fallback string) sq.SelectBuilder {
	applied := false
	for field, direction := range filter.Sort {
		if column, ok := allowed[field]; ok {
			order := "ASC"
			if direction == "desc" {
				order = "DESC"
			}
			b = b.OrderBy(column + " " + order)
			applied = true
		}
	}
	if !applied {
		b = b.OrderBy(fallback)
	}
	return b
}

func applyPagination(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if !filter.WithPagination {
		return b
	}
	return b.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
}

func searchPattern(s string) string {
	return "%" + s + "%"
}
