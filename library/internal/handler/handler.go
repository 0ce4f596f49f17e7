package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/JQ-Origin/Library-Document-Borrowing-System/docs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
	md "github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/middleware"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/validate"
)

type Handler struct {
	svc          LibraryService
	sessions     SessionStore
	loginPath    string
	allowOrigins []string
	log          *zap.Logger
}

func New(svc LibraryService, sessions SessionStore, loginPath string, allowOrigins []string, log *zap.Logger) *Handler {
	return &Handler{
		svc:          svc,
		sessions:     sessions,
		loginPath:    loginPath,
		allowOrigins: allowOrigins,
		log:          log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(h.corsConfig()))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	user := api.Group("", h.RequireSession)
	user.GET("/me", h.Me)
	user.PUT("/me", h.UpdateMe)
	user.GET("/dashboard", h.Dashboard)
	user.GET("/search", h.Search)
	user.POST("/search", h.SearchAction)
	user.GET("/seats", h.Seats)
	user.GET("/loans", h.Loans)

	admin := api.Group("/admin", h.RequireSession, h.RequireRole(model.RoleAdmin))
	admin.GET("/books", h.ListBooks)
	admin.POST("/books", h.CreateBook)
	admin.GET("/books/:id", h.GetBook)
	admin.POST("/books/:id", h.UpdateBook)
	admin.DELETE("/books/:id", h.DeleteBook)

	admin.GET("/borrows", h.ListBorrows)
	admin.POST("/borrows/:id/return", h.ReturnBorrow)
	admin.POST("/borrows/:id/renew", h.RenewBorrow)

	admin.GET("/users", h.ListUsers)
	admin.POST("/users/:id", h.UpdateUser)
	admin.POST("/users/:id/reset-password", h.ResetPassword)

	return e
}

// corsConfig opens reads to any origin; credentials (the session cookie)
// are only accepted from the configured origins, never with a wildcard.
func (h *Handler) corsConfig() middleware.CORSConfig {
	cfg := middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}
	if len(h.allowOrigins) > 0 {
		cfg.AllowOrigins = h.allowOrigins
		cfg.AllowCredentials = true
	}
	return cfg
}

// Health godoc
// @Summary liveness probe
// @Tags manage
// @Success 200 {string} string "OK"
// @Router /manage/health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

type messageResponse struct {
	Message string `json:"message"`
}

// httpError maps business errors to statuses; anything unknown is logged and hidden.
func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrPasswordTooLong):
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrPasswordTooLong.Error())
	case errs.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		h.log.Error("internal error", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// bindValid binds the request into req and runs struct validation.
func bindValid(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validate.Message(err))
	}
	return nil
}

func pageParam(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	// offsets are computed as (page-1)*size and must stay within bigint
	if err != nil || page < 1 || page > math.MaxInt32 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
	}
	return page, nil
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

func statusParam(c echo.Context) (model.BorrowStatus, error) {
	status := model.BorrowStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	return status, nil
}
