package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wassitdz/wassit-api/internal/order"
)

func TestCreateOrder_HappyPath(t *testing.T) {
	ta := newTestApp(t)
	auth, uid := ta.login(t, "karim@example.com")

	body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	// price_usd = 20 -> 5000 + 500 = 5500
	assert.Equal(t, int64(5000), got.PriceDZD)
	assert.Equal(t, int64(500), got.CommissionDZD)
	assert.Equal(t, int64(5500), got.TotalDZD)
	assert.Equal(t, order.StatusPending, got.Status)
	assert.Equal(t, uid, got.UserID)
	assert.Equal(t, "karim@example.com", got.UserEmail)
	assert.True(t, got.AgreedToTerms)
	assert.Contains(t, got.ScreenshotURL, "/object/public/order-assets/"+uid+"/")
	assert.True(t, strings.HasSuffix(got.ScreenshotURL, ".png"))

	// persisted
	stored, err := ta.orders.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), stored.TotalDZD)

	// fire-and-forget email carries id, customer email and total due
	sent := waitNotification(t, ta.notifier)
	assert.Equal(t, got.ID, sent.OrderID)
	assert.Equal(t, "karim@example.com", sent.Email)
	assert.Equal(t, int64(5500), sent.TotalDZD)
}

func TestCreateOrder_MissingFieldRejectedLocally(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")

	required := []string{"product_url", "color", "size", "price_usd", "wilaya", "phone_number", "postal_code"}
	for _, missing := range required {
		fields := validOrderFields()
		delete(fields, missing)
		body, ct := multipartBody(t, fields, map[string]string{"screenshot": "shot.png"})
		w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code, "missing %s", missing)
	}

	// no screenshot part
	body, ct := multipartBody(t, validOrderFields(), nil)
	w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// consent unchecked
	fields := validOrderFields()
	fields["agreed_to_terms"] = "false"
	body, ct = multipartBody(t, fields, map[string]string{"screenshot": "shot.png"})
	w = ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// validation failures never reach a collaborator
	assert.Equal(t, 0, ta.uploader.count())
	all, _ := ta.orders.ListAll(context.Background())
	assert.Len(t, all, 0)
}

func TestCreateOrder_InvalidInputs(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")

	cases := map[string]map[string]string{
		"bad url":      {"product_url": "not-a-url"},
		"bad price":    {"price_usd": "abc"},
		"zero price":   {"price_usd": "0"},
		"neg price":    {"price_usd": "-5"},
		"bad wilaya":   {"wilaya": "99 - nowhere"},
		"letters only": {"postal_code": "abcdef"},
	}
	for name, override := range cases {
		fields := validOrderFields()
		for k, v := range override {
			fields[k] = v
		}
		body, ct := multipartBody(t, fields, map[string]string{"screenshot": "shot.png"})
		w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s: %s", name, w.Body.String())
	}
}

func TestCreateOrder_PostalCodeSanitized(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")

	fields := validOrderFields()
	fields["postal_code"] = "16-00 0x99"
	body, ct := multipartBody(t, fields, map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "16000", got.PostalCode)
}

func TestCreateOrder_RequiresSession(t *testing.T) {
	ta := newTestApp(t)
	body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", "", body, ct)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckout_OK(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")

	body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	var created order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ta.do(t, http.MethodGet, "/api/orders/"+created.ID+"/checkout", auth, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var co order.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &co))
	assert.Equal(t, "00799999004290770859", co.PaymentAccountRIP)
	assert.Equal(t, int64(5500), co.AmountDueDZD)
	assert.Equal(t, created.ID, co.Order.ID)
}

func TestCheckout_NotFound(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")
	w := ta.do(t, http.MethodGet, "/api/orders/no-such-id/checkout", auth, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckout_OtherUsersOrderHidden(t *testing.T) {
	ta := newTestApp(t)
	ownerAuth, _ := ta.login(t, "owner@example.com")
	otherAuth, _ := ta.login(t, "other@example.com")

	body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", ownerAuth, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	var created order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = ta.do(t, http.MethodGet, "/api/orders/"+created.ID, otherAuth, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitPayment(t *testing.T) {
	ta := newTestApp(t)
	auth, uid := ta.login(t, "karim@example.com")

	body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	var created order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body, ct = multipartBody(t, nil, map[string]string{"proof": "receipt.jpg"})
	w = ta.do(t, http.MethodPost, "/api/orders/"+created.ID+"/payment", auth, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := ta.orders.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, stored.Status)
	assert.Contains(t, stored.PaymentProofURL, uid+"/payment_"+created.ID+"_")
	// total re-persisted unchanged
	assert.Equal(t, int64(5500), stored.TotalDZD)
}

func TestSubmitPayment_ProofRequired(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")

	body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
	w := ta.do(t, http.MethodPost, "/api/orders", auth, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	var created order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body, ct = multipartBody(t, nil, nil)
	w = ta.do(t, http.MethodPost, "/api/orders/"+created.ID+"/payment", auth, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMyOrders(t *testing.T) {
	ta := newTestApp(t)
	auth, _ := ta.login(t, "karim@example.com")
	otherAuth, _ := ta.login(t, "other@example.com")

	for _, a := range []string{auth, auth, otherAuth} {
		body, ct := multipartBody(t, validOrderFields(), map[string]string{"screenshot": "shot.png"})
		w := ta.do(t, http.MethodPost, "/api/orders", a, body, ct)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ta.do(t, http.MethodGet, "/api/orders", auth, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp order.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
}
