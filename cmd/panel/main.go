package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/panel-catalogos/internal/application/panel"
	infrapdf "github.com/jhoicas/panel-catalogos/internal/infrastructure/pdf"
	"github.com/jhoicas/panel-catalogos/internal/infrastructure/registro"
	httpRouter "github.com/jhoicas/panel-catalogos/internal/interfaces/http"
	"github.com/jhoicas/panel-catalogos/pkg/config"
	"github.com/jhoicas/panel-catalogos/pkg/logger"
)

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
		Str("registro", cfg.Registro.BaseURL).
		Msg("iniciando panel")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Servidor de registros: única fuente de verdad de productos, stock y ventas
	registroClient := registro.NewClient(cfg.Registro.BaseURL, cfg.Registro.Timeout, log.Component("registro"))

	sessions := panel.NewRegistry(ctx, panel.Deps{
		Registro:          registroClient,
		LowStockThreshold: cfg.Panel.LowStockThreshold,
		Log:               log.Component("panel"),
	}, cfg.Panel.SessionIdle)
	go sessions.Run(ctx, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Registro.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSOrigins,
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept",
			AllowCredentials: cfg.HTTP.CORSCredentials(),
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Panel.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Panel.DocsPath,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	} else {
		log.Warn().Str("ruta", cfg.Panel.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sesiones": sessions.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions: sessions,
		Reports:  infrapdf.NewMarotoReportGenerator(),
		Title:    cfg.App.Name,
		Log:      log.Component("http"),
	})

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
	stop()
	sessions.Close()

	log.Info().Msg("panel detenido")
}
