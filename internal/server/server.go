// Package server exposes the screening conversation over HTTP for clients
// that render their own chat surface. It owns session lifecycle only; all
// conversation logic lives in the interview engine.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	app      *fiber.App
	engine   *interview.Engine
	sessions *SessionRepository
	store    *store.Store
	logger   *zap.Logger
}

func New(engine *interview.Engine, sessions *SessionRepository, st *store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:      app,
		engine:   engine,
		sessions: sessions,
		store:    st,
		logger:   log,
	}

	api := app.Group("/api")
	api.Post("/sessions", s.createSession)
	api.Get("/sessions/:id", s.getSession)
	api.Post("/sessions/:id/messages", s.postMessage)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

type messageRequest struct {
	Message string `json:"message"`
}

type turnResponse struct {
	SessionID string          `json:"session_id"`
	Stage     interview.Stage `json:"stage"`
	Message   string          `json:"message"`
	Done      bool            `json:"done"`
}

func (s *Server) createSession(c *fiber.Ctx) error {
	session := &Session{State: interview.NewState(uuid.NewString())}
	s.sessions.Save(session)

	s.logger.Info("session created",
		zap.String("session_id", session.State.ID),
		zap.Int("live_sessions", s.sessions.Len()),
	)

	return c.Status(fiber.StatusCreated).JSON(turnResponse{
		SessionID: session.State.ID,
		Stage:     session.State.Stage,
		Message:   s.engine.Greeting(),
	})
}

func (s *Server) getSession(c *fiber.Ctx) error {
	session, ok := s.sessions.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	session.Lock()
	defer session.Unlock()

	return c.JSON(fiber.Map{
		"session_id": session.State.ID,
		"stage":      session.State.Stage,
		"turns":      session.State.Turns,
		"summary":    session.State.Summary(),
	})
}

func (s *Server) postMessage(c *fiber.Ctx) error {
	session, ok := s.sessions.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session.Lock()
	defer session.Unlock()

	msg, err := s.engine.Advance(c.UserContext(), session.State, req.Message)
	if errors.Is(err, interview.ErrSessionClosed) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "session is already closed"})
	}
	if err != nil {
		s.logger.Error("advancing conversation", zap.String("session_id", session.State.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	done := session.State.Stage.Terminal()
	if done {
		s.finalize(session.State)
		s.sessions.Delete(session.State.ID)
	}

	return c.JSON(turnResponse{
		SessionID: session.State.ID,
		Stage:     session.State.Stage,
		Message:   msg,
		Done:      done,
	})
}

// finalize hands the snapshot to the persistence collaborator exactly once.
func (s *Server) finalize(st *interview.State) {
	if s.store == nil || !st.MarkPersisted() {
		return
	}

	record, err := s.store.Append(st)
	if err != nil {
		s.logger.Error("persisting candidate snapshot",
			zap.String("session_id", st.ID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("candidate snapshot persisted",
		zap.String("session_id", st.ID),
		zap.String("record_id", record.ID),
		zap.String("stage", string(st.Stage)),
	)
}
