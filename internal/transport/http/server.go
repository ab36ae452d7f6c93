package http

import (
	"context"
	"time"

	"prizeledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	app  *fiber.App
	addr string
	log  *zap.Logger
}

// NewApp builds the fiber app with every route registered.
func NewApp(svc service.LedgerService, adminKey string, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "prizeledger",
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           120 * time.Second,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	NewHandler(svc, adminKey, log).Register(app)
	return app
}

func NewServer(addr string, svc service.LedgerService, adminKey string, log *zap.Logger) *Server {
	log = log.Named("http")
	return &Server{app: NewApp(svc, adminKey, log), addr: addr, log: log}
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("http server listening", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
