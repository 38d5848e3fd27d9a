package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"finplay/app/catalog"
	"finplay/app/config"
	"finplay/app/service/conversation"
	"finplay/app/service/transcript"

	"github.com/gofiber/fiber/v2"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
)

// Service is the host boundary of the dialogue core: a fiber HTTP API
// plus an optional MCP catalog server. It keeps one dialogue controller
// per session; the registry lock is never held across a turn.
type Service struct {
	cfg           *config.Config
	store         *catalog.Store
	factory       *conversation.Factory
	transcriptSvc *transcript.Service

	app *fiber.App

	mu       sync.Mutex
	sessions map[string]*conversation.Service
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:           do.MustInvoke[*config.Config](di),
		store:         do.MustInvoke[*catalog.Store](di),
		factory:       do.MustInvoke[*conversation.Factory](di),
		transcriptSvc: do.MustInvoke[*transcript.Service](di),
		sessions:      make(map[string]*conversation.Service),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	s.routes()

	return s, nil
}

func (s *Service) routes() {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/chat", s.handleChat)
	api.Get("/chat/state", s.handleState)
	api.Get("/chat/history", s.handleHistory)
}

// App exposes the fiber app for in-process testing.
func (s *Service) App() *fiber.App {
	return s.app
}

func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := s.app.Listen(s.cfg.Server.Addr); err != nil {
			return oops.Errorf("http server failed: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		return s.app.Shutdown()
	})

	if s.cfg.MCP.Addr != "" {
		sse := mcpserver.NewSSEServer(newCatalogServer(s.store))

		group.Go(func() error {
			if err := sse.Start(s.cfg.MCP.Addr); err != nil {
				return oops.Errorf("mcp server failed: %w", err)
			}

			return nil
		})

		group.Go(func() error {
			<-ctx.Done()
			return sse.Shutdown(context.Background())
		})
	}

	return group.Wait()
}

// session resolves an existing conversation or starts a fresh one.
func (s *Service) session(id string) (string, *conversation.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if conv, ok := s.sessions[id]; ok {
			return id, conv, false
		}
	}

	id = newSessionID()
	conv := s.factory.NewConversation(id)
	s.sessions[id] = conv

	return id, conv, true
}

func (s *Service) lookupSession(id string) (*conversation.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[id]
	return conv, ok
}

func newSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}
