package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*BackendAdapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewBackendAdapterWithClient(server.URL+"/api/", server.Client(), logger.NewDiscardLogger()), server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestBackendAdapter_ListDecodesEnvelope(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/doctors", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"doctor_id":"d1","full_name":"Dr. Sidi","approval_status":"approved"}]}`)
	})

	doctors, err := adapter.Doctors().List(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "d1", doctors[0].DoctorID)
	assert.Equal(t, domain.ApprovalApproved, doctors[0].Approval())
}

func TestBackendAdapter_ListNullDataIsEmpty(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":null}`)
	})

	coupons, err := adapter.Coupons().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, coupons)
	assert.Empty(t, coupons)
}

func TestBackendAdapter_ScopedPaths(t *testing.T) {
	var paths []string
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	})
	ctx := context.Background()

	_, err := adapter.Bookings().ListBy(ctx, domain.ScopeDoctor, "d1")
	require.NoError(t, err)
	_, err = adapter.Subscriptions().ListBy(ctx, domain.ScopePlan, "p1")
	require.NoError(t, err)
	_, err = adapter.UpdateBookingStatus(ctx, "7", domain.BookingConfirmed)
	require.NoError(t, err)
	_, err = adapter.ValidateCoupon(ctx, "SAVE10", "u1")
	require.NoError(t, err)
	_, err = adapter.UseCoupon(ctx, "c1", "u1")
	require.NoError(t, err)
	_, err = adapter.Withdrawals().Delete(ctx, "3")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/bookings/doctor/d1",
		"GET /api/patient-plan-subscriptions/plan/p1",
		"PATCH /api/bookings/7/status",
		"POST /api/coupons/validate/SAVE10",
		"POST /api/coupons/c1/use",
		"DELETE /api/withdrawals/3",
	}, paths)
}

func TestBackendAdapter_SendsJSONBody(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@estaraht.com", creds.Email)

		writeJSON(w, http.StatusOK, `{"success":false,"message":"Invalid credentials"}`)
	})

	result, err := adapter.Login(context.Background(), domain.Credentials{Email: "admin@estaraht.com", Password: "x"})
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Invalid credentials", result.Message)
}

func TestBackendAdapter_HTTPErrorMessage(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"message field", `{"message":"Doctor not found"}`, "Doctor not found"},
		{"error field", `{"error":"bad id"}`, "bad id"},
		{"status text fallback", `{}`, "API request failed: Not Found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, tc.body)
			})

			_, err := adapter.Doctors().Get(context.Background(), "missing")
			require.Error(t, err)

			var apiErr *domain.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, domain.ErrorKindHTTP, apiErr.Kind)
			assert.Equal(t, http.StatusNotFound, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Error())
		})
	}
}

func TestBackendAdapter_NonJSONResponse(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>Bad gateway</html>")
	})

	_, err := adapter.Reviews().List(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorKindNonJSON))
	assert.Equal(t, "<html>Bad gateway</html>", err.Error())
}

func TestBackendAdapter_NonJSONEmptyBody(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := adapter.Reviews().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP 500: Internal Server Error", err.Error())
}

func TestBackendAdapter_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	adapter := NewBackendAdapterWithClient(url, &http.Client{}, logger.NewDiscardLogger())
	_, err := adapter.Patients().List(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrorKindNetwork))
	assert.Equal(t, domain.NetworkErrorMessage, err.Error())
}

func TestBackendAdapter_CancelledContext(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Patients().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackendAdapter_Stats(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payment-plans/stats", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"totalPlans":4}}`)
	})

	stats, err := adapter.PaymentPlans().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalPlans)
}

func TestBackendAdapter_BaseURLResolvedOnce(t *testing.T) {
	adapter := NewBackendAdapterWithClient("undefined", &http.Client{}, logger.NewDiscardLogger())
	assert.Equal(t, "https://backend.estaraht.com/api", adapter.BaseURL())
}
