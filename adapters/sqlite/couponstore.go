package sqlite

import (
	"context"
	"database/sql"

	"github.com/tiffinbox/tiffinbox/domain/coupon"
	"github.com/tiffinbox/tiffinbox/ports"
)

// CouponStore implements ports.CouponStore with SQLite.
type CouponStore struct {
	db *DB
}

// NewCouponStore creates a new SQLite coupon store.
func NewCouponStore(db *DB) *CouponStore {
	return &CouponStore{db: db}
}

const couponColumns = "id, code, discount_percent, min_order_amount, description, is_active, created_at"

// Get retrieves a coupon by ID regardless of active state.
func (s *CouponStore) Get(ctx context.Context, id string) (coupon.Coupon, error) {
	return scanCoupon(s.db.DB.QueryRowContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE id = ?", id))
}

// GetActiveByCode retrieves an active coupon by normalized code.
func (s *CouponStore) GetActiveByCode(ctx context.Context, code string) (coupon.Coupon, error) {
	return scanCoupon(s.db.DB.QueryRowContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE code = ? AND is_active = 1", code))
}

// GetByCode retrieves a coupon by normalized code regardless of state.
func (s *CouponStore) GetByCode(ctx context.Context, code string) (coupon.Coupon, error) {
	return scanCoupon(s.db.DB.QueryRowContext(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE code = ?", code))
}

// ListActive returns active coupons ascending by minimum order amount.
func (s *CouponStore) ListActive(ctx context.Context) ([]coupon.Coupon, error) {
	return s.list(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE is_active = 1 ORDER BY min_order_amount ASC")
}

// ListAll returns every coupon, newest first.
func (s *CouponStore) ListAll(ctx context.Context) ([]coupon.Coupon, error) {
	return s.list(ctx,
		"SELECT "+couponColumns+" FROM coupons ORDER BY created_at DESC")
}

// Create stores a new coupon.
func (s *CouponStore) Create(ctx context.Context, c coupon.Coupon) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO coupons (id, code, discount_percent, min_order_amount, description, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Code, c.DiscountPercent, c.MinOrderAmount, c.Description, c.IsActive, c.CreatedAt)
	return err
}

// Update modifies an existing coupon.
func (s *CouponStore) Update(ctx context.Context, c coupon.Coupon) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE coupons SET code = ?, discount_percent = ?, min_order_amount = ?,
						   description = ?, is_active = ?
		WHERE id = ?
	`, c.Code, c.DiscountPercent, c.MinOrderAmount, c.Description, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

// Delete removes a coupon.
func (s *CouponStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.DB.ExecContext(ctx, "DELETE FROM coupons WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

func (s *CouponStore) list(ctx context.Context, query string) ([]coupon.Coupon, error) {
	rows, err := s.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []coupon.Coupon
	for rows.Next() {
		var c coupon.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.MinOrderAmount,
			&c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func scanCoupon(row *sql.Row) (coupon.Coupon, error) {
	var c coupon.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.MinOrderAmount,
		&c.Description, &c.IsActive, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return c, err
}

// Ensure interface compliance.
var _ ports.CouponStore = (*CouponStore)(nil)
