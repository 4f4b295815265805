package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/Customers-api/docs"
	"github.com/jhoicas/Customers-api/internal/application/auth"
	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/internal/infrastructure/cache"
	"github.com/jhoicas/Customers-api/internal/infrastructure/events"
	"github.com/jhoicas/Customers-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Customers-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Customers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Customers-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/Customers-api/internal/interfaces/http"
	"github.com/jhoicas/Customers-api/pkg/config"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// @title           Customers API
// @version         1.0
// @description     Alta, listado, edición y baja de clientes.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		// los logs van a stdout; los spans, a TRACING_OUTPUT (stderr por defecto)
		traceOut, closeTraceOut, err := telemetry.TraceWriter(cfg.Tracing.Output)
		if err != nil {
			log.Fatal().Err(err).Str("output", cfg.Tracing.Output).Msg("destino de trazas")
		}
		shutdownTracer, err := telemetry.InitTracer(cfg.App.Name, cfg.App.Env, traceOut)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar trazas")
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Error().Err(err).Msg("cerrar trazas")
			}
			if err := closeTraceOut(); err != nil {
				log.Error().Err(err).Msg("cerrar destino de trazas")
			}
		}()
	}

	// Almacenamiento: PostgreSQL (por defecto) o memoria
	var (
		customerRepo repository.CustomerRepository
		userRepo     repository.UserRepository
		pool         *pgxpool.Pool
	)
	switch cfg.App.Storage {
	case config.StorageMemory:
		customerRepo = memory.NewCustomerRepo()
		userRepo = memory.NewUserRepo()
	default:
		pool, err = postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{Tracing: cfg.Tracing.Enabled})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		customerRepo = postgres.NewCustomerRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
	}

	// Caché del listado (opcional)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se sigue sin caché")
		} else {
			defer redisClient.Close()
			customerRepo = cache.NewCustomerRepo(customerRepo, redisClient, cfg.Redis.TTL, log)
		}
	}

	// Eventos (opcional)
	var publisher ports.EventPublisher
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, cfg.NATS.SubjectPrefix, log)
		if err != nil {
			log.Warn().Err(err).Msg("NATS no disponible, eventos descartados")
		} else {
			defer nc.Close()
			publisher = nc
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
	}, httpRouter.RouterDeps{
		Customers: composer.New(customerRepo, publisher, log).All(),
		Report:    infrapdf.NewMarotoRosterGenerator(cfg.App.Name),
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Customers API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
