package screens

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func search(term string) listview.Query {
	return listview.Query{Search: &term}
}

func TestUsersScreen_AdminRowsAreNotDeletable(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /users", http.StatusOK, `{"success":true,"data":[
			{"user_id":"u1","email":"root@estaraht.com","role":"admin","status":"active"},
			{"user_id":"u2","email":"ops@estaraht.com","role":"support","status":"inactive"}
		]}`).
		on("DELETE /users/u2", http.StatusOK, `{"success":true}`)

	s := fake.factory().Users()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, listview.Query{})
	require.NoError(t, err)
	require.Len(t, view.Rows, 2)
	assert.False(t, view.Rows[0].CanDelete)
	assert.True(t, view.Rows[1].CanDelete)
	assert.Equal(t, UserStats{Total: 2, Active: 1, Inactive: 1}, view.Stats)

	assert.ErrorIs(t, s.Delete(ctx, "u1", yes()), domain.ErrNotDeletable)
	assert.Equal(t, 0, fake.count("DELETE /users/u1"))

	assert.ErrorIs(t, s.Delete(ctx, "missing", yes()), domain.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "u2", yes()))
	assert.Equal(t, 1, fake.count("DELETE /users/u2"))
	assert.Equal(t, 2, fake.count("GET /users"), "delete re-fetches the list")
}

func TestUsersScreen_DeclinedDeleteMakesNoCall(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /users", http.StatusOK, `{"data":[{"user_id":"u2","role":"support"}]}`)

	s := fake.factory().Users()
	s.Mount(context.Background())

	assert.ErrorIs(t, s.Delete(context.Background(), "u2", no()), domain.ErrNotConfirmed)
	assert.Equal(t, 0, fake.count("DELETE /users/u2"))
}

func TestBookingsScreen_StatusCountsSumToTotal(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /bookings", http.StatusOK, `{"data":[
			{"id":1,"status":"pending","booking_date":"2025-06-02","doctor":{"doctor_id":"d1","full_name":"Dr. Amal"},"patient":{"id":"p1","name":"Moussa"}},
			{"id":2,"status":"confirmed","booking_date":"2025-06-03","doctor":{"doctor_id":"d1","full_name":"Dr. Amal"},"patient":{"id":"p2","name":"Fatimetou"}},
			{"id":3,"status":"completed","booking_date":"2025-06-04"},
			{"id":4,"status":"cancelled","booking_date":"2025-06-05"},
			{"id":5,"status":"pending","booking_date":"2025-06-06"}
		]}`).
		on("GET /doctors", http.StatusOK, `{"data":[{"doctor_id":"d1","full_name":"Dr. Amal"}]}`).
		on("GET /patients", http.StatusOK, `{"data":[{"id":"p1","name":"Moussa"},{"id":"p2"}]}`)

	s := fake.factory().Bookings()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, listview.Query{})
	require.NoError(t, err)

	counts := view.Stats
	assert.Equal(t, 2, counts.Pending)
	assert.Equal(t, 1, counts.Confirmed)
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, 1, counts.Cancelled)
	assert.Equal(t, 5, counts.Pending+counts.Confirmed+counts.Completed+counts.Cancelled+counts.Other)

	assert.Equal(t, []Option{{ID: "d1", Label: "Dr. Amal"}}, view.Options.Doctors)
	assert.Equal(t, []Option{{ID: "p1", Label: "Moussa"}, {ID: "p2", Label: "p2"}}, view.Options.Patients)

	view, err = s.View(ctx, search("amal").WithFilter(FilterStatus, "confirmed"))
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, int64(2), view.Rows[0].ID)
	assert.Equal(t, 5, view.Stats.Total, "counts cover the whole collection")
}

func TestBookingsScreen_FailedLookupLeavesOptionsEmpty(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /bookings", http.StatusOK, `{"data":[]}`).
		on("GET /doctors", http.StatusOK, `{"data":[{"doctor_id":"d1"}]}`).
		on("GET /patients", http.StatusInternalServerError, `{"message":"down"}`)

	s := fake.factory().Bookings()
	s.Mount(context.Background())

	assert.Empty(t, s.Options().Doctors)
	assert.Empty(t, s.Options().Patients)
}

func TestBookingsScreen_UpdateStatus(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /bookings", http.StatusOK, `{"data":[{"id":7,"status":"pending"}]}`).
		on("GET /doctors", http.StatusOK, `{"data":[]}`).
		on("GET /patients", http.StatusOK, `{"data":[]}`).
		on("PATCH /bookings/7/status", http.StatusOK, `{"success":true}`).
		on("POST /bookings", http.StatusOK, `{"success":true}`)

	s := fake.factory().Bookings()
	ctx := context.Background()
	s.Mount(ctx)

	assert.True(t, domain.IsKind(s.UpdateStatus(ctx, "7", "archived"), domain.ErrorKindValidation))
	require.NoError(t, s.UpdateStatus(ctx, "7", domain.BookingCompleted))
	assert.JSONEq(t, `{"status":"completed"}`, fake.lastBody("PATCH /bookings/7/status"))

	require.NoError(t, s.Create(ctx, domain.BookingDraft{DoctorID: "d1", PatientID: "p1", BookingDate: "2025-06-10", BookingTime: "10:00"}))
	assert.JSONEq(t, `{"doctor_id":"d1","patient_id":"p1","booking_date":"2025-06-10","booking_time":"10:00","status":"pending"}`, fake.lastBody("POST /bookings"))
}

func TestCouponsScreen_ValidationAndStates(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /coupons", http.StatusOK, `{"data":[
			{"id":"c1","coupon_code":"PAST","valid_until":"2025-01-01T00:00:00Z","is_used":false},
			{"id":"c2","coupon_code":"USED","valid_until":"2030-01-01T00:00:00Z","is_used":true},
			{"id":"c3","coupon_code":"LIVE","valid_until":"2030-01-01","is_used":false}
		]}`).
		on("POST /coupons", http.StatusOK, `{"success":false,"message":"Coupon code already exists"}`)

	s := fake.factory().Coupons()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, listview.Query{})
	require.NoError(t, err)
	assert.Equal(t, domain.CouponStats{Active: 1, Used: 1, Expired: 1, Total: 3}, view.Stats)
	assert.Equal(t, domain.CouponExpired, view.Rows[0].Status)
	assert.Equal(t, domain.CouponUsed, view.Rows[1].Status)

	for _, value := range []string{"-1", "100.5", "abc", ""} {
		err := s.Create(ctx, domain.CouponDraft{CouponCode: "X", CouponValue: value})
		assert.EqualError(t, err, "Discount percentage must be between 0 and 100")
	}
	assert.Equal(t, 0, fake.count("POST /coupons"))

	err = s.Create(ctx, domain.CouponDraft{CouponCode: "LIVE", CouponValue: "100"})
	assert.EqualError(t, err, "Coupon code already exists")
	assert.Equal(t, 1, fake.count("POST /coupons"))

	view, err = s.View(ctx, listview.Query{}.WithFilter(FilterStatus, "active"))
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "LIVE", view.Rows[0].CouponCode)
}

func TestSubscriptionsScreen_PlanScope(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /patient-plan-subscriptions/plan/p9", http.StatusOK, `{"data":[
			{"id":"s1","status":"active","patients":{"id":"x","name":"Aicha"},"payment_plans":{"id":"p9","plan_name":"Gold"}},
			{"id":"s2","status":"expired"},
			{"id":"s3","status":"trialing"}
		]}`)

	s := fake.factory().Subscriptions("p9")
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, search("gold"))
	require.NoError(t, err)
	assert.Len(t, view.Rows, 1)
	assert.Equal(t, SubscriptionStats{Total: 3, Active: 2, Expired: 1}, view.Stats)
	assert.Equal(t, 0, fake.count("GET /patient-plan-subscriptions"))
}

func TestReviewsScreen_AverageRating(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /reviews", http.StatusOK, `{"data":[{"id":"r1","rating":"5"},{"id":"r2","rating":"4"},{"id":"r3","rating":"x"}]}`)

	s := fake.factory().Reviews()
	s.Mount(context.Background())

	view, err := s.View(context.Background(), listview.Query{})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStats{Total: 3, AverageRating: "3.00"}, view.Stats)
}

func TestWithdrawalsScreen_OptimisticStatusUpdate(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /withdrawals", http.StatusOK, `{"data":[
			{"id":1,"doctor_id":"d1","total_amount":"100.50","total_actual_amount":90,"operation_status":"pending"},
			{"id":2,"doctor_id":"d2","total_amount":null,"operation_status":"success"}
		]}`).
		on("GET /doctors", http.StatusOK, `{"data":[{"doctor_id":"d1","email":"amal@clinic.mr"}]}`).
		on("PUT /withdrawals/1", http.StatusOK, `{"success":true}`)

	s := fake.factory().Withdrawals()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, search("amal@"))
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "amal@clinic.mr", view.Rows[0].DoctorEmail)
	assert.InDelta(t, 100.5, view.Stats.TotalAmount, 0.001)
	assert.Equal(t, 1, view.Stats.Pending)

	require.NoError(t, s.UpdateStatus(ctx, "1", domain.WithdrawalSuccess))
	assert.Contains(t, fake.lastBody("PUT /withdrawals/1"), `"operation_status":"success"`)
	assert.Contains(t, fake.lastBody("PUT /withdrawals/1"), `"doctor_id":"d1"`)
	assert.Contains(t, fake.lastBody("PUT /withdrawals/1"), `"total_amount":"100.50"`)
	assert.Contains(t, fake.lastBody("PUT /withdrawals/1"), `"total_actual_amount":90`)

	assert.True(t, s.Stale())
	row, err := findBy(s.list, domain.WithdrawalRow.Key, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalSuccess, row.Status())
	assert.Equal(t, 1, fake.count("GET /withdrawals"))

	_, err = s.View(ctx, search(""))
	require.NoError(t, err)
	assert.Equal(t, 2, fake.count("GET /withdrawals"), "stale list re-fetches on the next read")
}

func TestWithdrawalsScreen_DoctorLookupFailureIsTolerated(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /withdrawals", http.StatusOK, `{"data":[{"id":1,"doctor_id":"d1"}]}`).
		on("GET /doctors", http.StatusBadGateway, `{"message":"down"}`)

	s := fake.factory().Withdrawals()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, listview.Query{})
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Empty(t, view.Rows[0].DoctorEmail)

	details, err := s.Details(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, details.Doctor)
}

func TestTransactionsScreen_FiltersTotalsAndDetails(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /transactions", http.StatusOK, `{"data":[
			{"id":"t1","doctor_id":"d1","patient_id":"p1","amount":10,"status":"success","payment_currency":"usd"},
			{"id":"t2","doctor_id":"d1","patient_id":"p2","amount":500,"status":"waiting","payment_currency":"MRU"},
			{"id":"t3","doctor_id":"d2","patient_id":"p1","amount":5,"status":"failed","payment_currency":"USD"}
		]}`).
		on("GET /doctors", http.StatusOK, `{"data":[{"doctor_id":"d1","email":"amal@clinic.mr"}]}`).
		on("GET /patients", http.StatusInternalServerError, `{"message":"down"}`).
		on("GET /doctors/d1", http.StatusOK, `{"data":{"doctor_id":"d1","email":"amal@clinic.mr"}}`)

	s := fake.factory().Transactions()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, listview.Query{}.WithFilter(FilterCurrency, "usd"))
	require.NoError(t, err)
	assert.Len(t, view.Rows, 2)
	assert.InDelta(t, 15, view.Stats.TotalUSD, 0.001)
	assert.Zero(t, view.Stats.TotalMRU)
	assert.Equal(t, 1, view.Stats.Success)
	assert.Equal(t, 1, view.Stats.Failed)

	view, err = s.View(ctx, search("amal@").WithFilter(FilterCurrency, listview.All))
	require.NoError(t, err)
	assert.Len(t, view.Rows, 2)
	assert.Empty(t, view.Rows[0].PatientEmail)

	details, err := s.Details(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, details.Doctor)
	assert.Equal(t, "d1", details.Doctor.DoctorID)
	assert.Nil(t, details.Patient)
}

func TestTransactionsScreen_Pagination(t *testing.T) {
	body := `{"data":[`
	for i := 0; i < 30; i++ {
		if i > 0 {
			body += ","
		}
		body += `{"id":"t` + strconv.Itoa(i) + `","status":"success"}`
	}
	body += `]}`

	fake := newFakeBackend(t).on("GET /transactions", http.StatusOK, body)
	s := fake.factory().Transactions()
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, listview.Query{Page: 3})
	require.NoError(t, err)
	assert.Len(t, view.Rows, 10)
	assert.Equal(t, 3, view.Page.Page)
	assert.Equal(t, 0, fake.count("GET /doctors"), "no lookups without referenced ids")

	view, err = s.View(ctx, listview.Query{}.WithFilter(FilterStatus, "success"))
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page.Page)
}

func TestDoctorsScreen_StatsAndRating(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /doctors", http.StatusOK, `{"data":[
			{"doctor_id":"d1","full_name":"Dr. Amal","avg_rating":4.5,"approval_status":"approved"},
			{"doctor_id":"d2","full_name":"Dr. Sidi","avg_rating":3.2},
			{"doctor_id":"d3","full_name":"Dr. Lalla","avg_rating":null,"approval_status":"rejected"}
		]}`)

	s := fake.factory().Doctors()
	s.Mount(context.Background())

	view, err := s.View(context.Background(), listview.Query{})
	require.NoError(t, err)
	assert.Equal(t, DoctorStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1, AverageRating: "2.6"}, view.Stats)

	require.NotNil(t, view.Rows[0].AvgRating)
	assert.Equal(t, 4.5, *view.Rows[0].AvgRating)
	assert.Nil(t, view.Rows[2].AvgRating)
}

func TestDoctorsScreen_EmptyListAverage(t *testing.T) {
	fake := newFakeBackend(t).on("GET /doctors", http.StatusOK, `{"data":[]}`)

	s := fake.factory().Doctors()
	s.Mount(context.Background())

	view, err := s.View(context.Background(), listview.Query{})
	require.NoError(t, err)
	assert.Equal(t, DoctorStats{AverageRating: "0.0"}, view.Stats)
}

func TestDoctorProfileScreen_ApprovalUpdate(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /doctors/d1", http.StatusOK, `{"data":{"doctor_id":"d1","full_name":"Dr. Amal","avg_rating":4.25,"approval_status":"pending"}}`).
		on("GET /bookings/doctor/d1", http.StatusOK, `{"data":[{"id":1,"status":"pending","patient":{"id":"p1","name":"Moussa"}}]}`).
		on("GET /availabilities/doctor/d1", http.StatusInternalServerError, `{"message":"down"}`).
		on("PUT /doctors/d1", http.StatusOK, `{"success":true}`)

	s := fake.factory().DoctorProfile("d1")
	ctx := context.Background()
	s.Mount(ctx)

	view, err := s.View(ctx, search("moussa"))
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, view.Approval)
	require.NotNil(t, view.Doctor.AvgRating)
	assert.Equal(t, 4.25, *view.Doctor.AvgRating)
	assert.Len(t, view.Bookings.Rows, 1)
	assert.Empty(t, view.Availabilities)

	err = s.UpdateApproval(ctx, domain.ApprovalUpdate{Status: domain.ApprovalRejected, RejectionReason: "  Missing license "})
	require.NoError(t, err)
	assert.JSONEq(t, `{"approval_status":"rejected","rejection_reason":"Missing license"}`, fake.lastBody("PUT /doctors/d1"))

	err = s.UpdateApproval(ctx, domain.ApprovalUpdate{Status: domain.ApprovalApproved, RejectionReason: "ignored"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"approval_status":"approved","rejection_reason":null}`, fake.lastBody("PUT /doctors/d1"))

	view, err = s.View(ctx, listview.Query{})
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, view.Approval)
	assert.Nil(t, view.Doctor.RejectionReason)
	assert.Equal(t, 1, fake.count("GET /doctors/d1"))
}

func TestPatientProfileScreen_MissingPatient(t *testing.T) {
	fake := newFakeBackend(t).
		on("GET /bookings/patient/p1", http.StatusOK, `{"data":[]}`)

	s := fake.factory().PatientProfile("p1")
	s.Mount(context.Background())

	_, err := s.View(context.Background(), listview.Query{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShows(t *testing.T) {
	f := newFakeBackend(t).factory()
	assert.True(t, Shows(f.Withdrawals(), domain.ResourceDoctors))
	assert.True(t, Shows(f.Transactions(), domain.ResourceTransactions))
	assert.False(t, Shows(f.Coupons(), domain.ResourceDoctors))
}
