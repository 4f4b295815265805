// Command customerctl administra clientes desde la terminal contra la API HTTP.
//
//	customerctl [-api URL] [-token JWT] [-rollback] <comando> [flags] [id]
//
// Comandos: list, get, add, update, delete, login.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Customers-api/pkg/config"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg.Client, os.Args[1:], os.Stdout, os.Stderr, log))
}
