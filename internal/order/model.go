package order

import "time"

// Status values are plain strings by convention, not an enforced state
// machine: admin may write any of the four at any time.
const (
	StatusPending   = "Pending"
	StatusPaid      = "Paid"
	StatusPurchased = "Purchased"
	StatusShipped   = "Shipped"
)

// TrackingBaseURL is the external lookup service tracking numbers link to.
const TrackingBaseURL = "https://t.17track.net/en#nums="

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusPurchased, StatusShipped:
		return true
	}
	return false
}

type Order struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`

	ProductURL string `json:"product_url"`
	Color      string `json:"color"`
	Size       string `json:"size"`
	// PriceUSD is NUMERIC in Postgres, carried as text to avoid float drift.
	PriceUSD string `json:"price_usd"`

	PriceDZD      int64 `json:"price_dzd"`
	CommissionDZD int64 `json:"commission_dzd"`
	TotalDZD      int64 `json:"total_price_dzd"`

	Wilaya      string `json:"wilaya"`
	PhoneNumber string `json:"phone_number"`
	PostalCode  string `json:"postal_code"`

	ScreenshotURL   string `json:"screenshot_url"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`

	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	AgreedToTerms  bool   `json:"agreed_to_terms"`

	CreatedAt time.Time `json:"created_at"`
}

// TrackingURL returns the external lookup link, or "" when no tracking
// number has been assigned yet.
func (o *Order) TrackingURL() string {
	if o.TrackingNumber == "" {
		return ""
	}
	return TrackingBaseURL + o.TrackingNumber
}
