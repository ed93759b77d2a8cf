// Package main instrument rental API.
//
// @title           Instrument Rental API
// @version         1.0
// @description     School instrument rental service (instruments, leases).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"instrumentrental/app/echoServer"
	instrumentctrl "instrumentrental/app/echoServer/controller/instrument"
	leasectrl "instrumentrental/app/echoServer/controller/lease"
	"instrumentrental/app/echoServer/validation"
	"instrumentrental/config"
	leaserepo "instrumentrental/repository/lease"
	instrumentsvc "instrumentrental/service/instrument"
	rentalsvc "instrumentrental/service/rental"
	terminationsvc "instrumentrental/service/termination"
	"instrumentrental/util/database"
)

func main() {

	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	// DB: *sqlx.DB over pgx
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	lr := leaserepo.New(db)

	// services
	is := instrumentsvc.New(db, lr)
	rs := rentalsvc.New(db, lr)
	ts := terminationsvc.New(db, lr)

	// controllers
	v := validator.New()
	instrumentC := &instrumentctrl.Controller{Svc: is, Log: log}
	leaseC := &leasectrl.Controller{Svc: rs, Term: ts, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Instrument: instrumentC,
		Lease:      leaseC,
	})

	port := cfg.Port
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
