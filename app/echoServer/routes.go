package echoServer

import (
	"github.com/labstack/echo/v4"

	instrumentctrl "instrumentrental/app/echoServer/controller/instrument"
	leasectrl "instrumentrental/app/echoServer/controller/lease"
)

type C struct {
	Instrument *instrumentctrl.Controller
	Lease      *leasectrl.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	// Instruments
	v1.GET("/instruments", c.Instrument.List)

	// Leases
	v1.POST("/leases", c.Lease.Create)
	v1.POST("/leases/:id/terminate", c.Lease.Terminate)
	v1.GET("/students/:id/leases", c.Lease.StudentHistory)
}
