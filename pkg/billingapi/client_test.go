package billingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkoutdash/pkg/crypto"
	"checkoutdash/pkg/utils"
)

func newEnvelope() *crypto.Envelope {
	return crypto.NewEnvelope("test-key", "test-iv")
}

func fakeBilling(t *testing.T, env *crypto.Envelope, status int, reply string, seen *atomic.Int32, got *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Add(1)
		var body envelopeBody
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		plain, err := env.Decrypt(body.Data)
		if !assert.NoError(t, err) {
			return
		}
		if got != nil {
			assert.NoError(t, json.Unmarshal(plain, got))
		}

		w.WriteHeader(status)
		if reply == "" {
			return
		}
		enc, _ := env.Encrypt([]byte(reply))
		_ = json.NewEncoder(w).Encode(envelopeBody{Data: enc})
	}))
}

func TestChargeRenewal(t *testing.T) {
	env := newEnvelope()
	var calls atomic.Int32
	var got map[string]string
	srv := fakeBilling(t, env, http.StatusOK, `{"status":"success","message":"charged"}`, &calls, &got)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, env, nil)
	res, err := c.ChargeRenewal(context.Background(), RenewalChargeRequest{ProductID: "app-9", ProductName: "Builder"})
	require.NoError(t, err)

	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "charged", res.Message)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, map[string]string{"productId": "app-9", "method": "productRtPaypal", "productName": "Builder"}, got)
}

func TestCancelSubscriptionPayload(t *testing.T) {
	env := newEnvelope()
	var calls atomic.Int32
	var got map[string]string
	srv := fakeBilling(t, env, http.StatusOK, `{"status":"success","message":"cancelled"}`, &calls, &got)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, env, nil)
	_, err := c.CancelSubscription(context.Background(), CancelRequest{
		ProductID: "app-9", UserID: "42", ProductName: "Builder", CancelReason: "requested", CancelledType: "immediate",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelSubscriptionProduct", got["method"])
	assert.Equal(t, "en", got["lang"])
	assert.Equal(t, "requested", got["cancelReason"])
}

func TestChargeRenewalFailures(t *testing.T) {
	env := newEnvelope()

	t.Run("non-2xx is not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := fakeBilling(t, env, http.StatusBadGateway, "", &calls, nil)
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, env, nil).ChargeRenewal(context.Background(), RenewalChargeRequest{ProductID: "x"})
		assert.ErrorIs(t, err, utils.ErrExternalServiceFailure)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("undecryptable response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":"bm90LWEtY2lwaGVy"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second, env, nil).ChargeRenewal(context.Background(), RenewalChargeRequest{ProductID: "x"})
		assert.ErrorIs(t, err, utils.ErrExternalServiceFailure)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, 20*time.Millisecond, env, nil).ChargeRenewal(context.Background(), RenewalChargeRequest{ProductID: "x"})
		assert.ErrorIs(t, err, utils.ErrExternalServiceFailure)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewClient("http://127.0.0.1:1", time.Second, env, nil).ChargeRenewal(context.Background(), RenewalChargeRequest{ProductID: "x"})
		assert.ErrorIs(t, err, utils.ErrExternalServiceFailure)
	})
}

func TestDecodeBareCiphertext(t *testing.T) {
	env := newEnvelope()
	enc, err := env.Encrypt([]byte(`{"status":"failed","message":"card declined"}`))
	require.NoError(t, err)

	res, err := NewClient("", time.Second, env, nil).decode([]byte(enc + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "failed", res.Status)
}

func TestDecodeNonStringStatus(t *testing.T) {
	env := newEnvelope()
	client := NewClient("", time.Second, env, nil)

	cases := map[string]string{
		`{"status":1,"message":"charged"}`:    "1",
		`{"status":true,"message":"charged"}`: "true",
		`{"status":"success","message":"ok"}`: "success",
		`{"status":null,"message":"charged"}`: "",
		`{"message":"charged"}`:               "",
	}
	for reply, want := range cases {
		enc, err := env.Encrypt([]byte(reply))
		require.NoError(t, err)

		res, err := client.decode([]byte(enc))
		require.NoError(t, err, reply)
		assert.Equal(t, want, res.Status, reply)
	}
}
