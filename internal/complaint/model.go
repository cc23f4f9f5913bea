package complaint

import "time"

const (
	StatusPending  = "Pending"
	StatusResolved = "Resolved"
	StatusRejected = "Rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusResolved, StatusRejected:
		return true
	}
	return false
}

type Complaint struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	ProofURL   string    `json:"proof_url,omitempty"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contact is the read-time enrichment surfaced to admin: the
// complainant's most recent order's email and phone. Never stored.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Enriched is one admin listing row.
// swagger:model EnrichedComplaint
type Enriched struct {
	Complaint
	UserEmail    string `json:"user_email"`
	UserPhone    string `json:"user_phone"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

// ReviewRequest is the admin save payload: status and notes land in one
// update.
// swagger:model ComplaintReviewRequest
type ReviewRequest struct {
	Status     string `json:"status" example:"Resolved"`
	AdminNotes string `json:"admin_notes" example:"refunded 5500 DZD"`
}
