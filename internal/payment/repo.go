// Package payment records captured payments and talks to the card processor.
package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Record(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]Payment, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Record inserts the payment and points the order at it in one transaction.
// There is no idempotency key: recording twice keeps both payment rows and
// the order reference follows the latest one.
func (r *PGRepo) Record(ctx context.Context, p *Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO payments (id, order_id, buyer_id, amount, method, status, transaction_id, provider_response, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
	`, p.ID, p.OrderID, p.BuyerID, p.Amount, p.Method, p.Status, p.TransactionID, p.ProviderResponse); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET payment_id = $2, updated_at = NOW() WHERE id = $1
	`, p.OrderID, p.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Payment
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, buyer_id, amount::text, method, status,
		       COALESCE(transaction_id, ''), provider_response, created_at
		FROM payments WHERE id=$1
	`, id).Scan(&p.ID, &p.OrderID, &p.BuyerID, &p.Amount, &p.Method, &p.Status,
		&p.TransactionID, &p.ProviderResponse, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, buyer_id, amount::text, method, status,
		       COALESCE(transaction_id, ''), provider_response, created_at
		FROM payments WHERE order_id=$1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.BuyerID, &p.Amount, &p.Method, &p.Status,
			&p.TransactionID, &p.ProviderResponse, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
