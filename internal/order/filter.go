package order

import "strings"

// Filter applies the admin console free-text search: case-insensitive
// substring on the owner email, plain substring on wilaya and phone.
// An empty query keeps everything.
func Filter(orders []Order, q string) []Order {
	if q == "" {
		return orders
	}
	lq := strings.ToLower(q)
	out := []Order{}
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.UserEmail), lq) ||
			strings.Contains(o.Wilaya, q) ||
			strings.Contains(o.PhoneNumber, q) {
			out = append(out, o)
		}
	}
	return out
}
