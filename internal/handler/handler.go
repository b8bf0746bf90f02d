// Package handler exposes the catalog services over HTTP with gin.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/auth"
	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles the application services the handlers call into.
type Services struct {
	Cards      *service.GameCardService
	Catalog    *service.CatalogService
	Categories *service.CategoryService
	Collection *service.CollectionService
	Deletion   *service.DeletionService
	Ratings    *service.RatingService
	Reports    *service.ReportService
	Accounts   *service.AccountService
}

// Handler serves the HTTP API on top of the services.
type Handler struct {
	svc       Services
	events    *hub.Hub
	jwtSecret string
	log       *zap.Logger
}

// New creates a Handler. events feeds the SSE stream.
func New(svc Services, events *hub.Hub, jwtSecret string, log *zap.Logger) *Handler {
	return &Handler{svc: svc, events: events, jwtSecret: jwtSecret, log: log}
}

// RegisterRoutes mounts every endpoint under the given group (normally /api/v1).
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	requireAuth := auth.AuthMiddleware(h.jwtSecret)
	optionalAuth := auth.OptionalAuthMiddleware(h.jwtSecret)
	requireUser := auth.RequireRole(models.RoleUser)
	requireModerator := auth.RequireRole(models.RoleModerator)

	// Auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	// Game card routes; reads are public, is_favorite is filled in for signed-in users
	cards := api.Group("/gamecards")
	{
		cards.GET("", optionalAuth, h.ListGameCards)
		cards.POST("/filter", optionalAuth, h.FilterGameCards)
		cards.GET("/events", h.StreamEvents) // Must be before /:id
		cards.GET("/title/:title", optionalAuth, h.GetGameCardByTitle)
		cards.GET("/:id", optionalAuth, h.GetGameCard)
		cards.GET("/:id/ratings", h.ListRatings)

		cards.POST("", requireAuth, requireUser, h.CreateGameCard)
		cards.POST("/:id/ratings", requireAuth, requireUser, h.RateGameCard)
		cards.DELETE("/:id/ratings", requireAuth, requireUser, h.DeleteRating)
		cards.POST("/:id/report", requireAuth, requireUser, h.ReportGameCard)

		cards.PUT("/:id", requireAuth, requireModerator, h.UpdateGameCard)
		cards.DELETE("/title/:title", requireAuth, requireModerator, h.DeleteGameCardByTitle)
		cards.DELETE("/:id", requireAuth, requireModerator, h.DeleteGameCard)
	}

	api.POST("/ratings/:id/report", requireAuth, requireUser, h.ReportComment)
	api.GET("/reports", requireAuth, requireModerator, h.ListReports)

	categories := api.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", requireAuth, requireModerator, h.CreateCategory)
	}

	// Current user routes (protected)
	me := api.Group("/users/me")
	me.Use(requireAuth)
	{
		me.GET("", h.GetMe)
		me.DELETE("", h.DeleteMe)

		me.GET("/favorites", h.GetFavorites)
		me.POST("/favorites/:id", h.AddFavorite)
		me.DELETE("/favorites/:id", h.RemoveFavorite)

		me.GET("/queue", h.GetQueue)
		me.PUT("/queue/move", h.MoveInQueue) // Must be before /:id
		me.POST("/queue/:id", h.AddToQueue)
		me.DELETE("/queue/:id", h.RemoveFromQueue)
	}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse is returned by endpoints that have nothing else to say.
type MessageResponse struct {
	Message string `json:"message" example:"Game card deleted"`
}

// respondError maps an error kind onto a status code and writes it as JSON.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}

	message := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	c.JSON(status, ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user's ID. Only valid behind AuthMiddleware.
func currentUser(c *gin.Context) uint {
	id, _ := auth.UserID(c)
	return id
}
