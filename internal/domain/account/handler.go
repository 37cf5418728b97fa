package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the two unauthenticated auth endpoints. Every
// other route in the application sits behind the token middleware.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.svc.Register(c.Request().Context(), creds.Username, creds.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
	case errors.Is(err, ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Please enter all fields")
	case errors.Is(err, ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.svc.Login(c.Request().Context(), creds.Username, creds.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	case errors.Is(err, ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Please enter all fields")
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
