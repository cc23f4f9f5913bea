package complaint

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("complaint not found")

type Repository interface {
	Create(ctx context.Context, c *Complaint) error
	ListByUser(ctx context.Context, userID string) ([]Complaint, error)
	ListAll(ctx context.Context) ([]Complaint, error)
	UpdateReview(ctx context.Context, id, status, adminNotes string) error
	// LatestContacts resolves each user id to the email/phone of that
	// user's most recent order, in one query for the whole listing.
	LatestContacts(ctx context.Context, userIDs []string) (map[string]Contact, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, c *Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.Status == "" {
		c.Status = StatusPending
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO complaints (id, user_id, message, proof_url, status, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, c.ID, c.UserID, c.Message, c.ProofURL, c.Status)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Complaint, error) {
	return r.list(ctx, `
		SELECT id, user_id, message, proof_url, status, admin_notes, created_at
		FROM complaints WHERE user_id=$1 ORDER BY created_at DESC
	`, userID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Complaint, error) {
	return r.list(ctx, `
		SELECT id, user_id, message, proof_url, status, admin_notes, created_at
		FROM complaints ORDER BY created_at DESC
	`)
}

func (r *PGRepo) list(ctx context.Context, sql string, args ...any) ([]Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Complaint{}
	for rows.Next() {
		var c Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.ProofURL,
			&c.Status, &c.AdminNotes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateReview persists status and notes together, mirroring the admin
// save button which writes both fields in one update.
func (r *PGRepo) UpdateReview(ctx context.Context, id, status, adminNotes string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE complaints SET status = $2, admin_notes = $3 WHERE id = $1
	`, id, status, adminNotes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) LatestContacts(ctx context.Context, userIDs []string) (map[string]Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out := make(map[string]Contact, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (user_id) user_id, user_email, phone_number
		FROM orders
		WHERE user_id = ANY($1)
		ORDER BY user_id, created_at DESC
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid string
		var c Contact
		if err := rows.Scan(&uid, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		out[uid] = c
	}
	return out, rows.Err()
}
