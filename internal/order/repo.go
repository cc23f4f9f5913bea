package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	AttachPaymentProof(ctx context.Context, id, proofURL string, totalDZD int64) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetTracking(ctx context.Context, id, trackingNumber string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
	id, user_id, user_email, product_url, color, size, price_usd::text,
	price_dzd, commission_dzd, total_price_dzd, wilaya, phone_number,
	postal_code, screenshot_url, payment_proof_url, status,
	tracking_number, agreed_to_terms, created_at`

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.ProductURL, &o.Color,
		&o.Size, &o.PriceUSD, &o.PriceDZD, &o.CommissionDZD, &o.TotalDZD,
		&o.Wilaya, &o.PhoneNumber, &o.PostalCode, &o.ScreenshotURL,
		&o.PaymentProofURL, &o.Status, &o.TrackingNumber, &o.AgreedToTerms,
		&o.CreatedAt)
}

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, user_email, product_url, color, size, price_usd,
			price_dzd, commission_dzd, total_price_dzd, wilaya, phone_number,
			postal_code, screenshot_url, status, agreed_to_terms, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW())
	`, o.ID, o.UserID, o.UserEmail, o.ProductURL, o.Color, o.Size, o.PriceUSD,
		o.PriceDZD, o.CommissionDZD, o.TotalDZD, o.Wilaya, o.PhoneNumber,
		o.PostalCode, o.ScreenshotURL, o.Status, o.AgreedToTerms)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id=$1
	`, id), &o)
	if err != nil {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id=$1 ORDER BY created_at DESC
	`, userID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC
	`)
}

func (r *PGRepo) list(ctx context.Context, sql string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// AttachPaymentProof is the checkout write: proof URL and Paid status in
// one statement, with the already-computed total re-persisted unchanged.
func (r *PGRepo) AttachPaymentProof(ctx context.Context, id, proofURL string, totalDZD int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_proof_url = $2, status = $3, total_price_dzd = $4
		WHERE id = $1
	`, id, proofURL, StatusPaid, totalDZD)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTracking writes the tracking number, flipping status to Shipped in
// the same statement when the number is non-empty. Clearing the number
// leaves status alone: shipped is a one-way flag.
func (r *PGRepo) SetTracking(ctx context.Context, id, trackingNumber string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if trackingNumber != "" {
		t, err := r.db.Exec(ctx, `
			UPDATE orders SET tracking_number = $2, status = $3 WHERE id = $1
		`, id, trackingNumber, StatusShipped)
		if err != nil {
			return err
		}
		if t.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	}
	t, err := r.db.Exec(ctx, `
		UPDATE orders SET tracking_number = '' WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if t.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
