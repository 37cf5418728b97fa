package handover

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
	api.POST("/patients/:patientId/doctor-handovers", h.add(Doctor))
	api.GET("/patients/:patientId/doctor-handovers", h.list(Doctor))
	api.POST("/patients/:patientId/nurse-handovers", h.add(Nurse))
	api.GET("/patients/:patientId/nurse-handovers", h.list(Nurse))
}

func (h *Handler) add(role Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
		}
		var ho Handover
		if err := c.Bind(&ho); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		ho.PatientID = patientID
		if err := h.svc.Add(c.Request().Context(), role, &ho); err != nil {
			if errors.Is(err, ErrMissingFields) {
				return echo.NewHTTPError(http.StatusBadRequest, "Handover text and author are required.")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusCreated, ho)
	}
}

func (h *Handler) list(role Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
		}
		handovers, err := h.svc.ListByPatient(c.Request().Context(), role, patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if handovers == nil {
			handovers = []*Handover{}
		}
		return c.JSON(http.StatusOK, handovers)
	}
}
