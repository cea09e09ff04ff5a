// Package rankapi serves the ranking engine over HTTP and provides a client
// for it. Bodies are JSON and may be zstd compressed in both directions.
package rankapi

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

// NewServer creates a new ranking server. A nil config uses the defaults.
func NewServer(serverConfig *ServerConfig) *Server {
	if serverConfig == nil {
		serverConfig = &ServerConfig{
			Host:      DefaultServerHost,
			Port:      DefaultServerPort,
			BodyLimit: DefaultBodyLimit,
		}
	}
	if serverConfig.BodyLimit == 0 {
		serverConfig.BodyLimit = DefaultBodyLimit
	}

	log.Info().
		Any("serverConfig", serverConfig).
		Msg("Server configuration loaded")

	app := fiber.New(fiber.Config{
		Prefork:               false,
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		BodyLimit:             serverConfig.BodyLimit,
	})

	app.Use(recover.New()) // add panic recovery
	// zstd responses are produced by ZstdMiddleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c *fiber.Ctx) bool {
			return acceptsZstd(c)
		},
	}))

	whitelistedRoutes := []string{HealthRoute}
	app.Use(ZstdMiddleware(whitelistedRoutes, serverConfig.BodyLimit))

	app.Get(HealthRoute, func(c *fiber.Ctx) error {
		return c.JSON(createResponse(HealthResponse{Status: "ok"}, nil))
	})

	return &Server{
		App:    app,
		config: serverConfig,
	}
}

func acceptsZstd(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAcceptEncoding)), "zstd")
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("Fiber error handler triggered")

	return ctx.Status(code).JSON(createResponse(map[string]interface{}{}, err))
}

// statusFor maps handler errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, ranking.ErrInvalidParameter) {
		return fiber.StatusBadRequest
	}
	var e *fiber.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fiber.StatusInternalServerError
}

// RoutePath is the route a request type is served on: "/" + type name.
func RoutePath[Req any]() string {
	var zero Req
	return "/" + reflect.TypeOf(zero).Name()
}

// ServeRoute registers handler under POST /<request type name>.
func ServeRoute[Req, Resp any](s *Server, handler RouterHandler[Req, Resp]) {
	route := RoutePath[Req]()

	s.App.Post(route, func(c *fiber.Ctx) error {
		var req Req
		if err := c.BodyParser(&req); err != nil {
			log.Error().
				Err(err).
				Str("route", route).
				Msg("Failed to parse request body")
			var zero Resp
			return c.Status(fiber.StatusBadRequest).
				JSON(createResponse(zero, err))
		}

		resp, err := handler(c, req)
		if err != nil {
			code := statusFor(err)
			log.Error().
				Err(err).
				Int("status_code", code).
				Str("route", route).
				Msg("Handler returned error")
			var zero Resp
			return c.Status(code).JSON(createResponse(zero, err))
		}

		return c.JSON(createResponse(resp, nil))
	})
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start listens until ctx is cancelled, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.Address()).Msg("Server starting")
		errCh <- s.App.Listen(s.Address())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	return s.App.ShutdownWithTimeout(5 * time.Second)
}
