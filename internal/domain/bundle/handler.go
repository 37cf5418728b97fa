package bundle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/bundles", h.ListBundles)
	api.GET("/bundles/:bundleId/items", h.ListItems)
	api.POST("/patients/:patientId/bundle-checks", h.RecordCheck)
	api.GET("/patients/:patientId/bundle-checks", h.ListChecks)
	api.GET("/patients/:patientId/bundle-checks/today", h.CheckedToday)
}

func (h *Handler) ListBundles(c echo.Context) error {
	bundles, err := h.svc.ListBundles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if bundles == nil {
		bundles = []*Bundle{}
	}
	return c.JSON(http.StatusOK, bundles)
}

func (h *Handler) ListItems(c echo.Context) error {
	bundleID, err := strconv.ParseInt(c.Param("bundleId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bundle id")
	}
	items, err := h.svc.ListItems(c.Request().Context(), bundleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Item{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) RecordCheck(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var check Check
	if err := c.Bind(&check); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	check.PatientID = patientID
	if err := h.svc.RecordCheck(c.Request().Context(), &check); err != nil {
		if errors.Is(err, ErrMissingFields) {
			return echo.NewHTTPError(http.StatusBadRequest, "Bundle item ID and checker are required.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, check)
}

func (h *Handler) ListChecks(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	checks, err := h.svc.ListChecks(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if checks == nil {
		checks = []*CheckRow{}
	}
	return c.JSON(http.StatusOK, checks)
}

func (h *Handler) CheckedToday(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	ids, err := h.svc.CheckedToday(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ids == nil {
		ids = []int64{}
	}
	return c.JSON(http.StatusOK, map[string][]int64{"checkedItemIds": ids})
}
