package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ DB *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{DB: db} }

func (s *PGStore) Create(ctx context.Context, u User) (User, error) {
	if u.OrdersList == nil {
		u.OrdersList = []int64{}
	}
	err := s.DB.QueryRow(ctx, `
		INSERT INTO users(name, role, order_ids) VALUES ($1, $2, $3)
		RETURNING id`, u.Name, string(u.Role), u.OrdersList,
	).Scan(&u.ID)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *PGStore) Get(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(s.DB.QueryRow(ctx, `SELECT id, name, role, order_ids FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, NotFound(id)
	}
	if err != nil {
		return User{}, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (s *PGStore) Update(ctx context.Context, u User) (User, error) {
	out, err := scanUser(s.DB.QueryRow(ctx, `
		UPDATE users SET name=$2, role=$3 WHERE id=$1
		RETURNING id, name, role, order_ids`, u.ID, u.Name, string(u.Role)))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, NotFound(u.ID)
	}
	if err != nil {
		return User{}, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return out, nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return NotFound(id)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `SELECT id, name, role, order_ids FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PGStore) AppendOrder(ctx context.Context, userID, orderID int64) error {
	ct, err := s.DB.Exec(ctx, `UPDATE users SET order_ids = array_append(order_ids, $2) WHERE id=$1`, userID, orderID)
	if err != nil {
		return fmt.Errorf("append order %d to user %d: %w", orderID, userID, err)
	}
	if ct.RowsAffected() == 0 {
		return NotFound(userID)
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u    User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &role, &u.OrdersList); err != nil {
		return User{}, err
	}
	u.Role = Role(role)
	if u.OrdersList == nil {
		u.OrdersList = []int64{}
	}
	return u, nil
}
