package order

// CreateOrderForm is the multipart intake payload. The screenshot file
// arrives as the "screenshot" part alongside these fields.
// swagger:model CreateOrderForm
type CreateOrderForm struct {
	ProductURL    string `form:"product_url" example:"https://shein.com/item/123"`
	Color         string `form:"color" example:"Red"`
	Size          string `form:"size" example:"XL"`
	PriceUSD      string `form:"price_usd" example:"20"`
	Wilaya        string `form:"wilaya" example:"16 - الجزائر"`
	PhoneNumber   string `form:"phone_number" example:"0550123456"`
	PostalCode    string `form:"postal_code" example:"16000"`
	AgreedToTerms bool   `form:"agreed_to_terms" example:"true"`
}

// UpdateStatusRequest payload of an admin status write.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"Purchased"`
}

// UpdateTrackingRequest payload of an admin tracking-number write.
// swagger:model UpdateTrackingRequest
type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" example:"DZ123456"`
}

// CheckoutResponse carries the payment instructions for one order.
// swagger:model CheckoutResponse
type CheckoutResponse struct {
	Order             *Order `json:"order"`
	PaymentAccountRIP string `json:"payment_account_rip" example:"00799999004290770859"`
	AmountDueDZD      int64  `json:"amount_due_dzd" example:"5500"`
}

// ListResponse wraps an order listing.
// swagger:model OrderListResponse
type ListResponse struct {
	// search query applied, admin listing only
	Q     string  `json:"q,omitempty"`
	Items []Order `json:"items"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}
