package controller

import (
	"context"
	"errors"
	"net/http"

	"ctchen222/tictactoe-session/internal/api/models"
	"ctchen222/tictactoe-session/internal/api/response"
	"ctchen222/tictactoe-session/internal/api/service"
	"ctchen222/tictactoe-session/internal/game"
	"ctchen222/tictactoe-session/internal/hub"
	"ctchen222/tictactoe-session/internal/room"

	"github.com/gin-gonic/gin"
)

// SessionController handles session-related HTTP requests.
type SessionController struct {
	sessionService service.SessionService
}

// NewSessionController creates a new SessionController.
func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// RegisterRoutes mounts the session endpoints on rg.
func (sc *SessionController) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	sessions.POST("", sc.Create)
	sessions.GET("/:id", sc.Get)
	sessions.DELETE("/:id", sc.Delete)
	sessions.POST("/:id/moves", sc.Move)
	sessions.POST("/:id/rounds", sc.NewRound)
	sessions.POST("/:id/scores/reset", sc.ResetScores)
	sessions.PUT("/:id/mode", sc.SetMode)
}

// Create handles the session creation endpoint. An empty body creates a PvP session.
func (sc *SessionController) Create(c *gin.Context) {
	var req models.CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	session, err := sc.sessionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.CreatedResponse(c, session)
}

func (sc *SessionController) Get(c *gin.Context) {
	session, err := sc.sessionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.SuccessResponse(c, session)
}

// Move handles a cell selection. A move the rules reject still answers 200
// with the unchanged state.
func (sc *SessionController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := sc.sessionService.Move(c.Request.Context(), c.Param("id"), *req.Index)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.SuccessResponse(c, session)
}

func (sc *SessionController) NewRound(c *gin.Context) {
	session, err := sc.sessionService.NewRound(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.SuccessResponse(c, session)
}

func (sc *SessionController) ResetScores(c *gin.Context) {
	session, err := sc.sessionService.ResetScores(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.SuccessResponse(c, session)
}

func (sc *SessionController) SetMode(c *gin.Context) {
	var req models.SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := sc.sessionService.SetMode(c.Request.Context(), c.Param("id"), game.Mode(req.Mode))
	if err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.SuccessResponse(c, session)
}

func (sc *SessionController) Delete(c *gin.Context) {
	if err := sc.sessionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	response.SuccessResponse(c, gin.H{"message": "Session closed"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, hub.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, hub.ErrInvalidMode), errors.Is(err, hub.ErrInvalidDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrClosed):
		return http.StatusGone
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
