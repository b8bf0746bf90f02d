package handler

import (
	"net/http"
	"time"

	"icebreaker/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type RatingInput struct {
	Score   int    `json:"score" binding:"required,min=1,max=5" example:"4"`
	Comment string `json:"comment" binding:"max=2000" example:"Works great with new teams."`
}

type RatingResponse struct {
	ID         uint      `json:"id"`
	GameCardID uint      `json:"game_card_id"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newRatingResponse(r models.Rating) RatingResponse {
	return RatingResponse{
		ID:         r.ID,
		GameCardID: r.GameCardID,
		UserID:     r.UserID,
		Username:   r.User.Username,
		Score:      r.Score,
		Comment:    r.Comment,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ListRatings godoc
// @Summary      List a game card's ratings
// @Description  Returns every rating of the card with its author, newest first.
// @Tags         ratings
// @Produce      json
// @Param        id path int true "Game card ID"
// @Success      200 {array}  RatingResponse
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/{id}/ratings [get]
func (h *Handler) ListRatings(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ratings, err := h.svc.Ratings.ForCard(c.Request.Context(), cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]RatingResponse, len(ratings))
	for i, r := range ratings {
		response[i] = newRatingResponse(r)
	}
	c.JSON(http.StatusOK, response)
}

// RateGameCard godoc
// @Summary      Rate a game card
// @Description  Sets the current user's score and comment. Rating again replaces the previous rating.
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int         true "Game card ID"
// @Param        input body RatingInput true "Rating"
// @Success      200 {object} RatingResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/{id}/ratings [post]
func (h *Handler) RateGameCard(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	rating, err := h.svc.Ratings.Rate(c.Request.Context(), currentUser(c), cardID, input.Score, input.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRatingResponse(*rating))
}

// DeleteRating godoc
// @Summary      Remove own rating of a game card
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game card ID"
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Rating not found"
// @Router       /gamecards/{id}/ratings [delete]
func (h *Handler) DeleteRating(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Ratings.Remove(c.Request.Context(), currentUser(c), cardID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Rating removed"})
}
