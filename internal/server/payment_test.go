package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-pro/fitlife/internal/models"
)

// fakeMercadoPago answers preference creation and serves one approved payment.
type fakeMercadoPago struct {
	mu      sync.Mutex
	created int
}

func (f *fakeMercadoPago) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.URL.Path {
	case "/checkout/preferences":
		f.created++
		_, _ = w.Write([]byte(`{"id":"pref-9","init_point":"https://mp.example/init/pref-9"}`))
	case "/v1/payments/555":
		_, _ = w.Write([]byte(`{"id":555,"status":"approved","description":"FitLife Pro - Premium Mensal","external_reference":"user-1"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"resource not found"}`))
	}
}

func TestCreateSubscription(t *testing.T) {
	env := newTestEnv(t, &fakeMercadoPago{})

	w := env.do(t, http.MethodPost, "/api/create-subscription", `{"plan": "premium", "userEmail": "ana@example.com", "userId": "user-1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":"pref-9","init_point":"https://mp.example/init/pref-9"}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/create-subscription", `{"plan": "platinum", "userId": "user-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/create-subscription", `{"plan": "premium"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubscription_NotConfigured(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/create-subscription", `{"plan": "premium", "userId": "user-1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWebhook_ApprovedPaymentActivatesSubscription(t *testing.T) {
	env := newTestEnv(t, &fakeMercadoPago{})
	require.NoError(t, env.db.Create(&models.User{ID: "user-1"}).Error)

	w := env.do(t, http.MethodPost, "/api/webhook-mercadopago", `{"type": "payment", "action": "payment.created", "data": {"id": "555"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/users/user-1/subscription", "")
	require.Equal(t, http.StatusOK, w.Code)

	var sub map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, "premium", sub["subscription"])
	assert.Equal(t, "active", sub["subscription_status"])
	assert.Equal(t, true, sub["active"])
}

func TestWebhook_QueryStringForm(t *testing.T) {
	env := newTestEnv(t, &fakeMercadoPago{})
	require.NoError(t, env.db.Create(&models.User{ID: "user-1"}).Error)

	w := env.do(t, http.MethodPost, "/api/webhook-mercadopago?topic=payment&id=555", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", "user-1").Error)
	assert.True(t, user.IsSubscribed())
}

func TestWebhook_NonPaymentIsAcknowledged(t *testing.T) {
	env := newTestEnv(t, &fakeMercadoPago{})

	w := env.do(t, http.MethodPost, "/api/webhook-mercadopago", `{"type": "merchant_order", "data": {"id": 1}}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_VendorFailureIs500(t *testing.T) {
	env := newTestEnv(t, &fakeMercadoPago{})

	w := env.do(t, http.MethodPost, "/api/webhook-mercadopago", `{"type": "payment", "data": {"id": 404}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
	assert.NotContains(t, body, "details", "vendor body is logged, not returned")
}

func TestSubscription_UnknownUser(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/users/ghost/subscription", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
