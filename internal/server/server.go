package server

import (
	"errors"
	"log/slog"
	"net/http"

	"ctchen222/tictactoe-session/internal/api/controller"
	"ctchen222/tictactoe-session/internal/api/response"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/hub"
	"ctchen222/tictactoe-session/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub      *hub.Hub
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer wires the websocket endpoint, the session API, a health check
// and the static presentation files from webDir.
func NewServer(h *hub.Hub, sessionController *controller.SessionController, webDir string) *Server {
	s := &Server{
		hub:    h,
		engine: gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/ws", s.handleWebSocket)
	s.engine.GET("/healthz", s.handleHealth)
	sessionController.RegisterRoutes(s.engine.Group("/api"))

	fs := http.FileServer(http.Dir(webDir))
	s.engine.NoRoute(gin.WrapH(fs))

	return s
}

// Engine exposes the router as an http.Handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"status": "ok", "sessions": s.hub.Len()})
}

// handleWebSocket attaches the connection to the session named by sessionId,
// or to a new session built from mode and difficulty.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	var (
		r   *room.Room
		err error
	)
	if sessionID := c.Query("sessionId"); sessionID != "" {
		r, err = s.hub.Room(sessionID)
	} else {
		r, err = s.hub.CreateRoom(ctx, game.Mode(c.Query("mode")), c.Query("difficulty"))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "No session to attach to")
		code := http.StatusBadRequest
		if errors.Is(err, hub.ErrSessionNotFound) {
			code = http.StatusNotFound
		}
		response.ErrorResponse(c, code, err.Error())
		return
	}
	span.SetAttributes(attribute.String("room.id", r.ID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	if err := r.AddViewer(ctx, conn); err != nil {
		slog.WarnContext(ctx, "Failed to attach viewer", "room.id", r.ID, "error", err)
		span.RecordError(err)
		conn.Close()
		return
	}

	go r.ReadPump(conn)
}
