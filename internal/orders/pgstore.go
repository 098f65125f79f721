package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PGStore struct{ DB *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{DB: db} }

// Create writes the order row and its items in one transaction.
func (s *PGStore) Create(ctx context.Context, o Order) (Order, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, total_price, status)
		VALUES ($1, $2::numeric, $3)
		RETURNING id, created_at`,
		o.UserID, o.TotalPrice.String(), string(o.Status),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, pid := range sortedProductIDs(o.OrderItems) {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, qty)
			VALUES ($1, $2, $3)`, o.ID, pid, o.OrderItems[pid]); err != nil {
			return Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("commit: %w", err)
	}
	return o, nil
}

func (s *PGStore) Get(ctx context.Context, id int64) (Order, error) {
	out, err := s.query(ctx, `SELECT id, user_id, total_price::text, status, created_at FROM orders WHERE id=$1`, id)
	if err != nil {
		return Order{}, err
	}
	if len(out) == 0 {
		return Order{}, notFound(id)
	}
	return out[0], nil
}

func (s *PGStore) List(ctx context.Context) ([]Order, error) {
	return s.query(ctx, `SELECT id, user_id, total_price::text, status, created_at FROM orders ORDER BY id`)
}

func (s *PGStore) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	return s.query(ctx, `SELECT id, user_id, total_price::text, status, created_at
		FROM orders WHERE user_id=$1 ORDER BY id`, userID)
}

func (s *PGStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	ct, err := s.DB.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

// query loads the matching orders, then their items with a single ANY($1) lookup.
func (s *PGStore) query(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	out := make([]Order, 0)
	idx := map[int64]int{}
	for rows.Next() {
		var (
			o      Order
			total  string
			status string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &total, &status, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if o.TotalPrice, err = decimal.NewFromString(total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("order %d total %q: %w", o.ID, total, err)
		}
		o.Status = Status(status)
		o.OrderItems = map[int64]int{}
		idx[o.ID] = len(out)
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, o := range out {
		ids = append(ids, o.ID)
	}
	itemRows, err := s.DB.Query(ctx, `SELECT order_id, product_id, qty FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var oid, pid int64
		var qty int
		if err := itemRows.Scan(&oid, &pid, &qty); err != nil {
			return nil, err
		}
		if i, ok := idx[oid]; ok {
			out[i].OrderItems[pid] = qty
		}
	}
	return out, itemRows.Err()
}
