package complaint

import "strings"

const countryCode = "213"

// WhatsAppLink builds the messaging deep link for a stored phone number:
// non-digits stripped, a leading national trunk "0" replaced with the
// country code. Returns "" for numbers with no digits at all.
func WhatsAppLink(phone string) string {
	var b strings.Builder
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			b.WriteByte(phone[i])
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if digits[0] == '0' {
		digits = countryCode + digits[1:]
	}
	return "https://wa.me/" + digits
}

// Enrich joins complaints against the contact map, defaulting to
// "unknown" for complainants who never placed an order.
func Enrich(complaints []Complaint, contacts map[string]Contact) []Enriched {
	out := make([]Enriched, 0, len(complaints))
	for _, c := range complaints {
		e := Enriched{Complaint: c, UserEmail: "unknown", UserPhone: "unknown"}
		if contact, ok := contacts[c.UserID]; ok {
			e.UserEmail = contact.Email
			e.UserPhone = contact.Phone
			e.WhatsAppLink = WhatsAppLink(contact.Phone)
		}
		out = append(out, e)
	}
	return out
}

// FilterStatus keeps complaints matching one status tab; "All" or ""
// keeps everything.
func FilterStatus(complaints []Complaint, status string) []Complaint {
	if status == "" || status == "All" {
		return complaints
	}
	out := []Complaint{}
	for _, c := range complaints {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}
