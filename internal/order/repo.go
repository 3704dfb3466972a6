// Package order implements the checkout workflow: snapshotting cart lines,
// decrementing product stock, and moving orders through their statuses.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zero3nine/AgriLinkWeb/internal/product"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrProductMissing aborts a whole checkout when any referenced
	// product no longer exists.
	ErrProductMissing = errors.New("product not found")
)

type Repository interface {
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Order, error)
	ListByDelivery(ctx context.Context, deliveryID string) ([]Order, error)
	UpdateStatus(ctx context.Context, o *Order) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create runs the whole checkout in one transaction: snapshot every product
// onto its line item, insert the order as Pending, then decrement stock.
// Product rows are locked FOR UPDATE for the duration, so two concurrent
// checkouts can never drive stock negative, and a failure anywhere rolls the
// order back with the stock untouched.
func (r *PGRepo) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := &Order{
		ID:        uuid.NewString(),
		BuyerID:   req.BuyerID,
		BuyerName: req.BuyerName,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	o.UpdatedAt = o.CreatedAt

	total := decimal.Zero
	stocks := make(map[string]decimal.Decimal, len(req.Items))
	for _, line := range req.Items {
		var it Item
		var priceText, stockText string
		err := tx.QueryRow(ctx, `
			SELECT id, name, price::text, stock::text, image_url, seller_id
			FROM products WHERE id=$1
			FOR UPDATE
		`, line.ProductID).Scan(&it.ProductID, &it.Name, &priceText, &stockText, &it.ImageURL, &it.SellerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrProductMissing, line.ProductID)
			}
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(priceText); err != nil {
			return nil, err
		}
		if stocks[it.ProductID], err = decimal.NewFromString(stockText); err != nil {
			return nil, err
		}
		it.ID = uuid.NewString()
		it.OrderID = o.ID
		it.Qty = line.Qty
		total = total.Add(it.Price.Mul(it.Qty))
		o.Items = append(o.Items, it)
	}
	o.TotalAmount = total

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, buyer_id, buyer_name, total_amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
	`, o.ID, o.BuyerID, o.BuyerName, o.TotalAmount, string(o.Status), o.CreatedAt); err != nil {
		return nil, err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, price, qty, image_url, seller_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, it.ID, it.OrderID, it.ProductID, it.Name, it.Price, it.Qty, it.ImageURL, it.SellerID); err != nil {
			return nil, err
		}
		// Clamp at zero rather than reject: the storefront sells what is
		// left and the label flips to Out of Stock. Safe against the
		// locked row read above.
		newStock, status := product.ApplyDecrement(stocks[it.ProductID], it.Qty)
		stocks[it.ProductID] = newStock
		if _, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = $2, stock_status = $3, updated_at = NOW()
			WHERE id = $1
		`, it.ProductID, newStock, status); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

const orderCols = `id, buyer_id, buyer_name, total_amount::text, status,
	COALESCE(delivery_id, ''), COALESCE(payment_id::text, ''), created_at, updated_at`

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, ErrNotFound
	}
	items, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Order, error) {
	return r.list(ctx, `
		SELECT `+orderCols+`
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR delivery_id = $2)
		ORDER BY created_at DESC
	`, f.Status, f.DeliveryID)
}

func (r *PGRepo) ListBySeller(ctx context.Context, sellerID string) ([]Order, error) {
	return r.list(ctx, `
		SELECT `+orderCols+`
		FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM order_items i
			WHERE i.order_id = o.id AND i.seller_id = $1
		)
		ORDER BY created_at DESC
	`, sellerID)
}

func (r *PGRepo) ListByDelivery(ctx context.Context, deliveryID string) ([]Order, error) {
	return r.list(ctx, `
		SELECT `+orderCols+`
		FROM orders
		WHERE delivery_id = $1
		ORDER BY created_at DESC
	`, deliveryID)
}

// UpdateStatus persists the status and delivery assignment already applied
// to o (see ApplyTransition).
func (r *PGRepo) UpdateStatus(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2,
		    delivery_id = NULLIF($3, ''),
		    updated_at = NOW()
		WHERE id = $1
	`, o.ID, string(o.Status), o.DeliveryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) list(ctx context.Context, sql string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *PGRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, name, price::text, qty::text, image_url, seller_id
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item)
	for rows.Next() {
		var it Item
		var priceText, qtyText string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &priceText, &qtyText, &it.ImageURL, &it.SellerID); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(priceText); err != nil {
			return nil, err
		}
		if it.Qty, err = decimal.NewFromString(qtyText); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var totalText, status string
	if err := row.Scan(&o.ID, &o.BuyerID, &o.BuyerName, &totalText, &status,
		&o.DeliveryID, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if o.TotalAmount, err = decimal.NewFromString(totalText); err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}
