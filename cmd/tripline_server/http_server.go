package main

import (
	"runtime/pprof"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbelov/tripline/pkg/log"
)

type HttpApi struct {
	f    *fiber.App
	addr string
}

func NewHttpApi(app *App, addr string) *HttpApi {
	api := &HttpApi{addr: addr}

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{
		Name:          "api",
		UserGetter:    Username,
		DoMetrics:     true,
		LogErrorsOnly: true,
	}))

	api.f.Get("/", getStatusHandler())
	api.f.Get("/stack", getStackHandler())
	api.f.Get("/metrics", getMetricsHandler())

	auth := api.f.Group("/auth")
	auth.Post("/signup", getSignupHandler(app))
	auth.Post("/login", getLoginHandler(app))
	auth.Post("/refresh", getRefreshHandler(app))

	// the token in the link is the sole credential here, so the route
	// stays outside the protected group
	api.f.Get("/api/invites/accept", app.OptionalAuth(), getInviteAcceptHandler(app))

	g := api.f.Group("/api", app.Protected(),
		limiter.New(limiter.Config{Max: app.config.RateLimit(), Expiration: time.Minute}))

	addTripRoutes(app, g)
	addItineraryRoutes(app, g)
	addPollRoutes(app, g)
	addChatRoutes(app, g)
	addInviteRoutes(app, g)

	// browsers cannot set headers on a websocket dial, so the handler
	// authenticates from the query string itself
	api.f.Get("/ws/trips/:id", getChatWsHandler(app))

	api.f.Use(func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNotFound)
	})

	return api
}

func (api *HttpApi) Address() string {
	return api.addr
}

func (api *HttpApi) Listen() error {
	return api.f.Listen(api.addr)
}

func (api *HttpApi) Shutdown() error {
	return api.f.Shutdown()
}

func getStatusHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	}
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}
