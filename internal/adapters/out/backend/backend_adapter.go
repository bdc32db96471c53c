package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"

	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
)

// BackendAdapter talks to the platform REST API. Every call is made once:
// no retries, no client-side timeout beyond the caller's context.
type BackendAdapter struct {
	client  *http.Client
	baseURL string
	logger  out.LoggerPort

	users          *Resource[domain.AdminUser]
	doctors        *Resource[domain.Doctor]
	patients       *Resource[domain.Patient]
	bookings       *Resource[domain.Booking]
	availabilities *Resource[domain.Availability]
	paymentPlans   *Resource[domain.PaymentPlan]
	subscriptions  *Resource[domain.PatientPlanSubscription]
	coupons        *Resource[domain.Coupon]
	reviews        *Resource[domain.Review]
	withdrawals    *Resource[domain.Withdrawal]
	transactions   *Resource[domain.Transaction]
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	return NewBackendAdapterWithClient(cfg.Backend.URL, &http.Client{}, logger)
}

func NewBackendAdapterWithClient(baseURL string, client *http.Client, logger out.LoggerPort) *BackendAdapter {
	a := &BackendAdapter{
		client:  client,
		baseURL: config.ResolveBackendURL(baseURL),
		logger:  logger,
	}
	a.users = newResource[domain.AdminUser](a, domain.ResourceUsers)
	a.doctors = newResource[domain.Doctor](a, domain.ResourceDoctors)
	a.patients = newResource[domain.Patient](a, domain.ResourcePatients)
	a.bookings = newResource[domain.Booking](a, domain.ResourceBookings)
	a.availabilities = newResource[domain.Availability](a, domain.ResourceAvailabilities)
	a.paymentPlans = newResource[domain.PaymentPlan](a, domain.ResourcePaymentPlans)
	a.subscriptions = newResource[domain.PatientPlanSubscription](a, domain.ResourcePatientPlanSubscriptions)
	a.coupons = newResource[domain.Coupon](a, domain.ResourceCoupons)
	a.reviews = newResource[domain.Review](a, domain.ResourceReviews)
	a.withdrawals = newResource[domain.Withdrawal](a, domain.ResourceWithdrawals)
	a.transactions = newResource[domain.Transaction](a, domain.ResourceTransactions)
	return a
}

func (a *BackendAdapter) BaseURL() string {
	return a.baseURL
}

func (a *BackendAdapter) Users() out.Repository[domain.AdminUser] { return a.users }
func (a *BackendAdapter) Doctors() out.Repository[domain.Doctor] { return a.doctors }
func (a *BackendAdapter) Patients() out.Repository[domain.Patient] { return a.patients }
func (a *BackendAdapter) Bookings() out.Repository[domain.Booking] { return a.bookings }
func (a *BackendAdapter) Coupons() out.Repository[domain.Coupon] { return a.coupons }
func (a *BackendAdapter) Reviews() out.Repository[domain.Review] { return a.reviews }
func (a *BackendAdapter) Withdrawals() out.Repository[domain.Withdrawal] { return a.withdrawals }

func (a *BackendAdapter) Availabilities() out.Repository[domain.Availability] {
	return a.availabilities
}

func (a *BackendAdapter) PaymentPlans() out.Repository[domain.PaymentPlan] {
	return a.paymentPlans
}

func (a *BackendAdapter) Subscriptions() out.Repository[domain.PatientPlanSubscription] {
	return a.subscriptions
}

func (a *BackendAdapter) Transactions() out.Repository[domain.Transaction] {
	return a.transactions
}

func (a *BackendAdapter) Login(ctx context.Context, credentials domain.Credentials) (out.Result, error) {
	var result out.Result
	err := a.do(ctx, http.MethodPost, "/auth/login", credentials, &result)
	return result, err
}

func (a *BackendAdapter) RequestPasswordReset(ctx context.Context, email string) (out.Result, error) {
	var result out.Result
	err := a.do(ctx, http.MethodPost, "/auth/request-reset", map[string]string{"email": email}, &result)
	return result, err
}

func (a *BackendAdapter) ResetPassword(ctx context.Context, reset domain.PasswordReset) (out.Result, error) {
	var result out.Result
	err := a.do(ctx, http.MethodPost, "/auth/reset-password", reset, &result)
	return result, err
}

func (a *BackendAdapter) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (out.Result, error) {
	var result out.Result
	path := fmt.Sprintf("/bookings/%s/status", nurl.PathEscape(id))
	err := a.do(ctx, http.MethodPatch, path, map[string]domain.BookingStatus{"status": status}, &result)
	return result, err
}

func (a *BackendAdapter) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var env out.Envelope[*domain.Coupon]
	if err := a.do(ctx, http.MethodGet, "/coupons/code/"+nurl.PathEscape(code), nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (a *BackendAdapter) ValidateCoupon(ctx context.Context, code, userID string) (out.Result, error) {
	var result out.Result
	err := a.do(ctx, http.MethodPost, "/coupons/validate/"+nurl.PathEscape(code), map[string]string{"userId": userID}, &result)
	return result, err
}

func (a *BackendAdapter) UseCoupon(ctx context.Context, id, userID string) (out.Result, error) {
	var result out.Result
	path := fmt.Sprintf("/coupons/%s/use", nurl.PathEscape(id))
	err := a.do(ctx, http.MethodPost, path, map[string]string{"userId": userID}, &result)
	return result, err
}

func (a *BackendAdapter) Stats(ctx context.Context, resource domain.Resource) (domain.ResourceStats, error) {
	var env out.Envelope[domain.ResourceStats]
	if err := a.do(ctx, http.MethodGet, resource.Path()+"/stats", nil, &env); err != nil {
		return domain.ResourceStats{}, err
	}
	return env.Data, nil
}

// do performs one call and normalizes every failure into *domain.Error.
func (a *BackendAdapter) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	logFields := out.LogFields{"method": method, "path": path}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			a.logger.Error("backend.request.encode_failed", withError(logFields, err))
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		a.logger.Error("backend.request.build_failed", withError(logFields, err))
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("backend.request", logFields)

	resp, err := a.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		a.logger.Error("backend.request.network_failed", withError(logFields, err))
		return domain.NewNetworkError()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Error("backend.response.read_failed", withError(logFields, err))
		return domain.NewNetworkError()
	}

	logFields["status"] = resp.StatusCode

	if !isJSON(resp.Header.Get("Content-Type")) {
		text := strings.TrimSpace(string(raw))
		if text == "" {
			text = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		a.logger.Error("backend.response.not_json", logFields)
		return domain.NewNonJSONError(resp.StatusCode, text)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := errorMessage(raw, resp.StatusCode)
		logFields["message"] = message
		a.logger.Error("backend.response.failed", logFields)
		return domain.NewHTTPError(resp.StatusCode, message)
	}

	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		a.logger.Error("backend.response.decode_failed", withError(logFields, err))
		return domain.NewNonJSONError(resp.StatusCode, "Unexpected response from server: "+err.Error())
	}

	return nil
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "API request failed: " + http.StatusText(status)
}

func withError(fields out.LogFields, err error) out.LogFields {
	merged := make(out.LogFields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["error"] = err.Error()
	return merged
}

var errNoData = errors.New("response carried no data")
