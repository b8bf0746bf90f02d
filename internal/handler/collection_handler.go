package handler

import (
	"net/http"

	"icebreaker/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// MoveInput moves the queue entry at From to position To (both zero-based).
type MoveInput struct {
	From *int `json:"from" binding:"required,min=0"`
	To   *int `json:"to" binding:"required,min=0"`
}

// QueueResponse is the user's queue in position order. IDs may repeat.
type QueueResponse struct {
	GameCardIDs []uint `json:"game_card_ids"`
}

func newQueueResponse(q models.Queue) QueueResponse {
	ids := []uint(q)
	if ids == nil {
		ids = []uint{}
	}
	return QueueResponse{GameCardIDs: ids}
}

// region --- Favorites ---

// GetFavorites godoc
// @Summary      List favorite game cards
// @Description  Returns the current user's favorite cards ranked by average rating.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  GameCardResponse
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/favorites [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	views, err := h.svc.Collection.Favorites(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	favorites := make(map[uint]bool, len(views))
	for _, v := range views {
		favorites[v.ID] = true
	}
	c.JSON(http.StatusOK, newGameCardResponses(views, favorites))
}

// AddFavorite godoc
// @Summary      Add a game card to favorites
// @Description  Idempotent; adding a card twice keeps a single entry.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game card ID"
// @Success      200 {object} map[string]bool "{"is_favorite": true}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "User or game card not found"
// @Router       /users/me/favorites/{id} [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Collection.AddToFavorites(c.Request.Context(), currentUser(c), cardID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": true})
}

// RemoveFavorite godoc
// @Summary      Remove a game card from favorites
// @Description  Idempotent; removing a card that is not a favorite succeeds.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game card ID"
// @Success      200 {object} map[string]bool "{"is_favorite": false}"
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/favorites/{id} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Collection.RemoveFromFavorites(c.Request.Context(), currentUser(c), cardID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": false})
}

// endregion

// region --- Queue ---

// GetQueue godoc
// @Summary      List queued game cards
// @Description  Returns the current user's queue in order. A card queued twice appears twice.
// @Tags         queue
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  GameCardResponse
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/queue [get]
func (h *Handler) GetQueue(c *gin.Context) {
	views, err := h.svc.Collection.Queue(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameCardResponses(views, h.favoriteSet(c)))
}

// AddToQueue godoc
// @Summary      Append a game card to the queue
// @Tags         queue
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game card ID"
// @Success      200 {object} QueueResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "User or game card not found"
// @Router       /users/me/queue/{id} [post]
func (h *Handler) AddToQueue(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	queue, err := h.svc.Collection.AddToQueue(c.Request.Context(), currentUser(c), cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQueueResponse(queue))
}

// RemoveFromQueue godoc
// @Summary      Remove a game card from the queue
// @Description  Removes the first occurrence of the card; the rest keep their order.
// @Tags         queue
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game card ID"
// @Success      200 {object} QueueResponse
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/queue/{id} [delete]
func (h *Handler) RemoveFromQueue(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	queue, err := h.svc.Collection.RemoveFromQueue(c.Request.Context(), currentUser(c), cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQueueResponse(queue))
}

// MoveInQueue godoc
// @Summary      Reorder the queue
// @Tags         queue
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MoveInput true "Positions"
// @Success      200 {object} QueueResponse
// @Failure      400 {object} ErrorResponse "Position out of range"
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/queue/move [put]
func (h *Handler) MoveInQueue(c *gin.Context) {
	var input MoveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	queue, err := h.svc.Collection.MoveInQueue(c.Request.Context(), currentUser(c), *input.From, *input.To)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQueueResponse(queue))
}

// endregion
