package lease

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rs "instrumentrental/service/rental"
	ts "instrumentrental/service/termination"
)

type Controller struct {
	Svc  rs.Service
	Term ts.Service
	V    *validator.Validate
	Log  *slog.Logger
}

// POST /v1/leases
func (h *Controller) Create(c echo.Context) error {
	var req CreateLeaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	id, err := h.Svc.CreateLease(c.Request().Context(), req.StudentID, req.InstrumentID, req.EndDay)
	if err != nil {
		h.Log.Error("lease create", "err", err)
		switch rs.Code(err) {
		case rs.ErrBadEndDate:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "end date must be after today and within 12 months"})
		case rs.ErrQuotaExceeded:
			return c.JSON(http.StatusConflict, echo.Map{"message": "student already has the maximum number of active leases"})
		case rs.ErrInstrumentUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "instrument is not available"})
		case rs.ErrInstrumentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "instrument not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"lease_id": id})
}

// POST /v1/leases/:id/terminate
func (h *Controller) Terminate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Term.Terminate(c.Request().Context(), id); err != nil {
		h.Log.Error("lease terminate", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "terminated"})
}

// GET /v1/students/:id/leases
func (h *Controller) StudentHistory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rows, err := h.Svc.StudentHistory(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("student history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
