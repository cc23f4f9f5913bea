package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/wassitdz/wassit-api/internal/complaint"
	"github.com/wassitdz/wassit-api/internal/config"
	"github.com/wassitdz/wassit-api/internal/order"
	"github.com/wassitdz/wassit-api/internal/realtime"
	"github.com/wassitdz/wassit-api/internal/user"
)

//
// ---------- STUBS & FAKES ----------
//

// stubOrderRepo implements order.Repository in memory.
type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*order.Order{}}
}

func (r *stubOrderRepo) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []order.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *stubOrderRepo) ListAll(ctx context.Context) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []order.Order{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *stubOrderRepo) AttachPaymentProof(ctx context.Context, id, proofURL string, totalDZD int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.PaymentProofURL = proofURL
	o.Status = order.StatusPaid
	o.TotalDZD = totalDZD
	return nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) SetTracking(ctx context.Context, id, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.TrackingNumber = trackingNumber
	if trackingNumber != "" {
		o.Status = order.StatusShipped
	}
	return nil
}

func sortNewestFirst(orders []order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// stubComplaintRepo implements complaint.Repository in memory.
type stubComplaintRepo struct {
	mu         sync.Mutex
	complaints []*complaint.Complaint
	contacts   map[string]complaint.Contact
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{contacts: map[string]complaint.Contact{}}
}

func (r *stubComplaintRepo) Create(ctx context.Context, c *complaint.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.Status == "" {
		c.Status = complaint.StatusPending
	}
	cp := *c
	r.complaints = append([]*complaint.Complaint{&cp}, r.complaints...)
	return nil
}

func (r *stubComplaintRepo) ListByUser(ctx context.Context, userID string) ([]complaint.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []complaint.Complaint{}
	for _, c := range r.complaints {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubComplaintRepo) ListAll(ctx context.Context) ([]complaint.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []complaint.Complaint{}
	for _, c := range r.complaints {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubComplaintRepo) UpdateReview(ctx context.Context, id, status, adminNotes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.complaints {
		if c.ID == id {
			c.Status = status
			c.AdminNotes = adminNotes
			return nil
		}
	}
	return complaint.ErrNotFound
}

func (r *stubComplaintRepo) LatestContacts(ctx context.Context, userIDs []string) (map[string]complaint.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]complaint.Contact{}
	for _, id := range userIDs {
		if c, ok := r.contacts[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

// stubUploader records uploads and hands back deterministic public URLs.
type stubUploader struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (u *stubUploader) Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.mu.Lock()
	u.uploads = append(u.uploads, objectPath)
	u.mu.Unlock()
	return "https://cdn.test/object/public/order-assets/" + objectPath, nil
}

func (u *stubUploader) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.uploads)
}

// stubNotifier records sends on a channel so tests can wait for the
// fire-and-forget goroutine.
type notifiedOrder struct {
	OrderID  string
	Email    string
	TotalDZD int64
}

type stubNotifier struct{ sent chan notifiedOrder }

func newStubNotifier() *stubNotifier {
	return &stubNotifier{sent: make(chan notifiedOrder, 4)}
}

func (n *stubNotifier) NotifyNewOrder(ctx context.Context, orderID, customerEmail string, totalDZD int64) error {
	n.sent <- notifiedOrder{OrderID: orderID, Email: customerEmail, TotalDZD: totalDZD}
	return nil
}

//
// ---------- APP & REQUEST HELPERS ----------
//

type userRepoMem struct{ users map[string]*user.User }

func (r *userRepoMem) Create(ctx context.Context, u *user.User) error {
	if _, ok := r.users[u.Email]; ok {
		return user.ErrAlreadyExist
	}
	r.users[u.Email] = u
	return nil
}

func (r *userRepoMem) GetByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *userRepoMem) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

const testAdminEmail = "admin@wassit.dz"

type testApp struct {
	app        *app
	router     *gin.Engine
	orders     *stubOrderRepo
	complaints *stubComplaintRepo
	uploader   *stubUploader
	notifier   *stubNotifier
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	orders := newStubOrderRepo()
	complaints := newStubComplaintRepo()
	uploader := &stubUploader{}
	notifier := newStubNotifier()
	users := user.NewService(&userRepoMem{users: map[string]*user.User{}}, []byte("test-secret"), time.Hour, testAdminEmail)

	a := &app{
		cfg: config.Config{
			PaymentAccountRIP: "00799999004290770859",
		},
		users:      users,
		orders:     orders,
		complaints: complaints,
		store:      uploader,
		notifier:   notifier,
		broker:     realtime.NewBroker(),
	}
	return &testApp{
		app:        a,
		router:     newRouter(a),
		orders:     orders,
		complaints: complaints,
		uploader:   uploader,
		notifier:   notifier,
	}
}

// login registers (if needed) and returns "Bearer <token>" plus the user id.
func (ta *testApp) login(t *testing.T, email string) (string, string) {
	t.Helper()
	_, _ = ta.app.users.Register(context.Background(), email, "password123")
	token, u, err := ta.app.users.Authenticate(context.Background(), email, "password123")
	require.NoError(t, err)
	return "Bearer " + token, u.ID
}

// multipartBody builds an intake/checkout payload with optional file parts.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (ta *testApp) do(t *testing.T, method, path, auth string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	ta.router.ServeHTTP(w, req)
	return w
}

func validOrderFields() map[string]string {
	return map[string]string{
		"product_url":     "https://shein.com/item/123",
		"color":           "Red",
		"size":            "XL",
		"price_usd":       "20",
		"wilaya":          "16 - الجزائر",
		"phone_number":    "0550123456",
		"postal_code":     "16000",
		"agreed_to_terms": "true",
	}
}

func waitNotification(t *testing.T, n *stubNotifier) notifiedOrder {
	t.Helper()
	select {
	case got := <-n.sent:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for order notification")
		return notifiedOrder{}
	}
}

func jsonBody(s string, args ...any) *bytes.Buffer {
	return bytes.NewBufferString(fmt.Sprintf(s, args...))
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
