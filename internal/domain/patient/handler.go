package patient

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
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create)
	api.GET("/patients/:id", h.Get)
	api.POST("/patients/:id/medications", h.AddMedication)
	api.PUT("/patients/:id/medications/:medId", h.SetAdministered)
	api.POST("/patients/:id/notes", h.AddNote)
	api.POST("/patients/:id/procedures", h.AddProcedure)
}

func (h *Handler) List(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) AddMedication(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.PatientID = id
	if err := h.svc.AddMedication(c.Request().Context(), &m); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) SetAdministered(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	// A non-numeric id can never match a medication, so it reads as absent.
	medID, err := strconv.ParseInt(c.Param("medId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Medication not found.")
	}

	var body struct {
		Administered *bool `json:"administered"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.svc.SetAdministered(c.Request().Context(), id, medID, body.Administered)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) AddNote(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	var n Note
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	n.PatientID = id
	if err := h.svc.AddNote(c.Request().Context(), &n); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) AddProcedure(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	var p Procedure
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.PatientID = id
	if err := h.svc.AddProcedure(c.Request().Context(), &p); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func patientID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found.")
	case errors.Is(err, ErrMedicationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Medication not found.")
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
