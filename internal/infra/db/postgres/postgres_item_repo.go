package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/repository"
)

var _ repository.ItemRepository = (*PostgresItemRepo)(nil)

type PostgresItemRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresItemRepo(pool *pgxpool.Pool) *PostgresItemRepo {
	return &PostgresItemRepo{pool: pool}
}

func (r *PostgresItemRepo) Save(ctx context.Context, tx repository.Tx, item *model.Item) error {
	const q = `
INSERT INTO items (user_id, name, bought, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	row, err := pickRow(ctx, r.pool, tx, q, item.UserID, item.Name, item.Bought, item.CreatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&item.ID); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *PostgresItemRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64) ([]model.Item, error) {
	const q = `
SELECT id, user_id, name, bought, created_at
  FROM items WHERE user_id = $1 ORDER BY id;
`
	return r.list(ctx, tx, q, userID)
}

func (r *PostgresItemRepo) ListUnboughtByUser(ctx context.Context, tx repository.Tx, userID int64) ([]model.Item, error) {
	const q = `
SELECT id, user_id, name, bought, created_at
  FROM items WHERE user_id = $1 AND NOT bought ORDER BY id;
`
	return r.list(ctx, tx, q, userID)
}

func (r *PostgresItemRepo) list(ctx context.Context, tx repository.Tx, q string, userID int64) ([]model.Item, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Bought, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresItemRepo) MarkBought(ctx context.Context, tx repository.Tx, itemID int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, `UPDATE items SET bought = TRUE WHERE id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("mark bought: %w", err)
	}
	return nil
}

func (r *PostgresItemRepo) Delete(ctx context.Context, tx repository.Tx, itemID int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, `DELETE FROM items WHERE id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
