package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// price is read as text so it round-trips through decimal without float loss.
const productColumns = `id, name, description, category, price::text, quantity`

type PGStore struct{ DB *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{DB: db} }

func (s *PGStore) Create(ctx context.Context, p Product) (Product, error) {
	err := s.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, category, price, quantity)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING id`,
		p.Name, p.Description, p.Category, p.Price.String(), p.Quantity,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *PGStore) Get(ctx context.Context, id int64) (Product, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, notFound(id)
	}
	if err != nil {
		return Product{}, fmt.Errorf("select product %d: %w", id, err)
	}
	return p, nil
}

func (s *PGStore) Update(ctx context.Context, p Product) (Product, error) {
	ct, err := s.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, category=$4, price=$5::numeric, quantity=$6
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Category, p.Price.String(), p.Quantity,
	)
	if err != nil {
		return Product{}, fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return Product{}, notFound(p.ID)
	}
	return p, nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (s *PGStore) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products
		WHERE price BETWEEN $1::numeric AND $2::numeric ORDER BY id`, min.String(), max.String())
}

func (s *PGStore) ListByName(ctx context.Context, substr string) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products
		WHERE strpos(name, $1) > 0 ORDER BY id`, substr)
}

func (s *PGStore) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products WHERE category=$1 ORDER BY id`, category)
}

func (s *PGStore) query(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &price, &p.Quantity); err != nil {
		return Product{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("product %d price %q: %w", p.ID, price, err)
	}
	p.Price = d
	return p, nil
}
