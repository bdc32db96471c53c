package http

import (
	"context"
	"net/http"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
	"github.com/estaraht/admin-dashboard/internal/core/services/screens"
	"github.com/estaraht/admin-dashboard/internal/core/services/workspace"
	"github.com/gin-gonic/gin"
)

// ScreensController serves every list and detail screen from the
// session's workspace.
type ScreensController struct {
	factory    *screens.Factory
	workspaces *workspace.Registry
	logger     out.LoggerPort
}

func NewScreensController(factory *screens.Factory, workspaces *workspace.Registry, logger out.LoggerPort) *ScreensController {
	return &ScreensController{
		factory:    factory,
		workspaces: workspaces,
		logger:     logger,
	}
}

// target names the screen a request works on and how to build it.
type target[S screens.Screen] func(ctx *gin.Context) (string, func() S)

func fixed[S screens.Screen](key string, build func() S) target[S] {
	return func(*gin.Context) (string, func() S) {
		return key, build
	}
}

type viewFunc[S, V any] func(S, context.Context, listview.Query) (V, error)

func open[S screens.Screen](c *ScreensController, ctx *gin.Context, t target[S]) S {
	key, build := t(ctx)
	return workspace.Open(ctx.Request.Context(), c.workspaces.Get(sessionID(ctx)), key, build)
}

func serveView[S screens.Screen, V any](c *ScreensController, t target[S], view viewFunc[S, V]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		q, err := parseQuery(ctx)
		if err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		s := open(c, ctx, t)
		result, err := view(s, ctx.Request.Context(), q)
		if err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// respond re-reads the screen after a mutation.
func respond[S screens.Screen, V any](c *ScreensController, ctx *gin.Context, s S, status int, view viewFunc[S, V]) {
	result, err := view(s, ctx.Request.Context(), listview.Query{})
	if err != nil {
		fail(ctx, c.logger, err, nil)
		return
	}
	ctx.JSON(status, result)
}

func serveCreate[S screens.Screen, D, V any](c *ScreensController, t target[S], create func(S, context.Context, D) error, view viewFunc[S, V]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var draft D
		if err := ctx.ShouldBindJSON(&draft); err != nil {
			badRequest(ctx, c.logger, err)
			return
		}
		s := open(c, ctx, t)
		if err := create(s, ctx.Request.Context(), draft); err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		respond(c, ctx, s, http.StatusCreated, view)
	}
}

func serveDelete[S screens.Screen, V any](c *ScreensController, t target[S], del func(S, context.Context, string, out.ConfirmPort) error, view viewFunc[S, V]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		confirm := newRequestConfirmer(ctx)
		s := open(c, ctx, t)
		if err := del(s, ctx.Request.Context(), ctx.Param("id"), confirm); err != nil {
			fail(ctx, c.logger, err, confirm)
			return
		}
		respond(c, ctx, s, http.StatusOK, view)
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func serveStatus[S screens.Screen, T ~string, V any](c *ScreensController, t target[S], update func(S, context.Context, string, T) error, view viewFunc[S, V]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req statusRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, c.logger, err)
			return
		}
		s := open(c, ctx, t)
		if err := update(s, ctx.Request.Context(), ctx.Param("id"), T(req.Status)); err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		respond(c, ctx, s, http.StatusOK, view)
	}
}

func serveDetails[S screens.Screen, V any](c *ScreensController, t target[S], details func(S, context.Context, string) (V, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s := open(c, ctx, t)
		result, err := details(s, ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

func (c *ScreensController) RegisterRoutes(api *gin.RouterGroup) {
	f := c.factory

	users := fixed("users", f.Users)
	api.GET("/users", serveView(c, users, (*screens.UsersScreen).View))
	api.POST("/users", serveCreate(c, users, (*screens.UsersScreen).Create, (*screens.UsersScreen).View))
	api.DELETE("/users/:id", serveDelete(c, users, (*screens.UsersScreen).Delete, (*screens.UsersScreen).View))

	doctors := fixed("doctors", f.Doctors)
	api.GET("/doctors", serveView(c, doctors, (*screens.DoctorsScreen).View))
	api.POST("/doctors", serveCreate(c, doctors, (*screens.DoctorsScreen).Create, (*screens.DoctorsScreen).View))
	api.DELETE("/doctors/:id", serveDelete(c, doctors, (*screens.DoctorsScreen).Delete, (*screens.DoctorsScreen).View))

	doctorProfile := target[*screens.DoctorProfileScreen](func(ctx *gin.Context) (string, func() *screens.DoctorProfileScreen) {
		id := ctx.Param("id")
		return "doctor:" + id, func() *screens.DoctorProfileScreen { return f.DoctorProfile(id) }
	})
	api.GET("/doctors/:id", serveView(c, doctorProfile, (*screens.DoctorProfileScreen).View))
	api.PUT("/doctors/:id/approval", c.updateApproval(doctorProfile))

	patients := fixed("patients", f.Patients)
	api.GET("/patients", serveView(c, patients, (*screens.PatientsScreen).View))
	api.POST("/patients", serveCreate(c, patients, (*screens.PatientsScreen).Create, (*screens.PatientsScreen).View))
	api.DELETE("/patients/:id", serveDelete(c, patients, (*screens.PatientsScreen).Delete, (*screens.PatientsScreen).View))

	patientProfile := target[*screens.PatientProfileScreen](func(ctx *gin.Context) (string, func() *screens.PatientProfileScreen) {
		id := ctx.Param("id")
		return "patient:" + id, func() *screens.PatientProfileScreen { return f.PatientProfile(id) }
	})
	api.GET("/patients/:id", serveView(c, patientProfile, (*screens.PatientProfileScreen).View))

	bookings := fixed("bookings", f.Bookings)
	api.GET("/bookings", serveView(c, bookings, (*screens.BookingsScreen).View))
	api.POST("/bookings", serveCreate(c, bookings, (*screens.BookingsScreen).Create, (*screens.BookingsScreen).View))
	api.PATCH("/bookings/:id/status", serveStatus(c, bookings, (*screens.BookingsScreen).UpdateStatus, (*screens.BookingsScreen).View))
	api.DELETE("/bookings/:id", serveDelete(c, bookings, (*screens.BookingsScreen).Delete, (*screens.BookingsScreen).View))

	plans := fixed("payment-plans", f.PaymentPlans)
	api.GET("/payment-plans", serveView(c, plans, (*screens.PaymentPlansScreen).View))
	api.POST("/payment-plans", serveCreate(c, plans, (*screens.PaymentPlansScreen).Create, (*screens.PaymentPlansScreen).View))
	api.DELETE("/payment-plans/:id", serveDelete(c, plans, (*screens.PaymentPlansScreen).Delete, (*screens.PaymentPlansScreen).View))

	subscriptions := target[*screens.SubscriptionsScreen](func(ctx *gin.Context) (string, func() *screens.SubscriptionsScreen) {
		plan := ctx.Query("plan")
		return "patient-plan-subscriptions:" + plan, func() *screens.SubscriptionsScreen { return f.Subscriptions(plan) }
	})
	api.GET("/patient-plan-subscriptions", serveView(c, subscriptions, (*screens.SubscriptionsScreen).View))
	api.DELETE("/patient-plan-subscriptions/:id", serveDelete(c, subscriptions, (*screens.SubscriptionsScreen).Delete, (*screens.SubscriptionsScreen).View))

	coupons := fixed("coupons", f.Coupons)
	api.GET("/coupons", serveView(c, coupons, (*screens.CouponsScreen).View))
	api.POST("/coupons", serveCreate(c, coupons, (*screens.CouponsScreen).Create, (*screens.CouponsScreen).View))
	api.DELETE("/coupons/:id", serveDelete(c, coupons, (*screens.CouponsScreen).Delete, (*screens.CouponsScreen).View))
	api.GET("/coupons/code/:code", c.lookupCoupon(coupons))
	api.POST("/coupons/validate/:code", c.validateCoupon(coupons))
	api.POST("/coupons/:id/use", c.useCoupon(coupons))

	reviews := fixed("reviews", f.Reviews)
	api.GET("/reviews", serveView(c, reviews, (*screens.ReviewsScreen).View))
	api.DELETE("/reviews/:id", serveDelete(c, reviews, (*screens.ReviewsScreen).Delete, (*screens.ReviewsScreen).View))

	withdrawals := fixed("withdrawals", f.Withdrawals)
	api.GET("/withdrawals", serveView(c, withdrawals, (*screens.WithdrawalsScreen).View))
	api.GET("/withdrawals/:id", serveDetails(c, withdrawals, (*screens.WithdrawalsScreen).Details))
	api.PATCH("/withdrawals/:id/status", serveStatus(c, withdrawals, (*screens.WithdrawalsScreen).UpdateStatus, (*screens.WithdrawalsScreen).View))
	api.DELETE("/withdrawals/:id", serveDelete(c, withdrawals, (*screens.WithdrawalsScreen).Delete, (*screens.WithdrawalsScreen).View))

	transactions := fixed("transactions", f.Transactions)
	api.GET("/transactions", serveView(c, transactions, (*screens.TransactionsScreen).View))
	api.GET("/transactions/:id", serveDetails(c, transactions, (*screens.TransactionsScreen).Details))
}

func (c *ScreensController) updateApproval(t target[*screens.DoctorProfileScreen]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var update domain.ApprovalUpdate
		if err := ctx.ShouldBindJSON(&update); err != nil {
			badRequest(ctx, c.logger, err)
			return
		}
		s := open(c, ctx, t)
		if err := s.UpdateApproval(ctx.Request.Context(), update); err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		respond(c, ctx, s, http.StatusOK, (*screens.DoctorProfileScreen).View)
	}
}

type couponUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (c *ScreensController) validateCoupon(t target[*screens.CouponsScreen]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req couponUserRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, c.logger, err)
			return
		}
		s := open(c, ctx, t)
		result, err := s.Validate(ctx.Request.Context(), ctx.Param("code"), req.UserID)
		if err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

func (c *ScreensController) useCoupon(t target[*screens.CouponsScreen]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req couponUserRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, c.logger, err)
			return
		}
		s := open(c, ctx, t)
		if err := s.MarkUsed(ctx.Request.Context(), ctx.Param("id"), req.UserID); err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		respond(c, ctx, s, http.StatusOK, (*screens.CouponsScreen).View)
	}
}

func (c *ScreensController) lookupCoupon(t target[*screens.CouponsScreen]) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s := open(c, ctx, t)
		coupon, err := s.Lookup(ctx.Request.Context(), ctx.Param("code"))
		if err != nil {
			fail(ctx, c.logger, err, nil)
			return
		}
		ctx.JSON(http.StatusOK, coupon)
	}
}
