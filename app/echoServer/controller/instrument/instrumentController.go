package instrument

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	is "instrumentrental/service/instrument"
)

type Controller struct {
	Svc is.Service
	Log *slog.Logger
}

// GET /v1/instruments?type=
func (h *Controller) List(c echo.Context) error {
	out, err := h.Svc.ListAvailable(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		h.Log.Error("instrument list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
