package sqlite

import (
	"context"
	"fmt"

	"github.com/tiffinbox/tiffinbox/domain/order"
	"github.com/tiffinbox/tiffinbox/ports"
)

// OrderStore implements ports.OrderStore with SQLite.
type OrderStore struct {
	db *DB
}

// NewOrderStore creates a new SQLite order store.
func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create stores an order and its item snapshot in one transaction.
func (s *OrderStore) Create(ctx context.Context, o order.Order) error {
	tx, err := s.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, subtotal, gst, vat, discount, coupon_code,
							total_amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?, ?)
	`, o.ID, o.UserID, o.Subtotal, o.GST, o.VAT, o.Discount, o.CouponCode,
		o.TotalAmount, string(o.Status), o.CreatedAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, food_item_id, name, quantity, price)
			VALUES (?, ?, ?, ?, ?)
		`, o.ID, it.FoodItemID, it.Name, it.Quantity, it.Price)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// ListByUser returns a user's orders, newest first.
func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	return s.list(ctx, `
		SELECT id, user_id, subtotal, gst, vat, discount, COALESCE(coupon_code, ''),
			   total_amount, status, created_at
		FROM orders WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
}

// ListAll returns all orders, newest first.
func (s *OrderStore) ListAll(ctx context.Context) ([]order.Order, error) {
	return s.list(ctx, `
		SELECT id, user_id, subtotal, gst, vat, discount, COALESCE(coupon_code, ''),
			   total_amount, status, created_at
		FROM orders ORDER BY created_at DESC
	`)
}

func (s *OrderStore) list(ctx context.Context, query string, args ...interface{}) ([]order.Order, error) {
	rows, err := s.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &o.Subtotal, &o.GST, &o.VAT, &o.Discount,
			&o.CouponCode, &o.TotalAmount, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = order.Status(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *OrderStore) loadItems(ctx context.Context, orderID string) ([]order.Item, error) {
	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT food_item_id, name, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY rowid ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.FoodItemID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Ensure interface compliance.
var _ ports.OrderStore = (*OrderStore)(nil)
