package handler

import (
	"net/http"
	"time"

	"icebreaker/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportInput carries the reason for a report.
type ReportInput struct {
	Reason string `json:"reason" binding:"required,max=500" example:"Offensive content"`
}

type ReportResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	GameCardID *uint     `json:"game_card_id,omitempty"`
	RatingID   *uint     `json:"rating_id,omitempty"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func newGameCardReportResponse(r models.GameCardReport) ReportResponse {
	cardID := r.GameCardID
	return ReportResponse{ID: r.ID, UserID: r.UserID, GameCardID: &cardID, Reason: r.Reason, CreatedAt: r.CreatedAt}
}

func newCommentReportResponse(r models.CommentReport) ReportResponse {
	return ReportResponse{ID: r.ID, UserID: r.UserID, RatingID: r.RatingID, Reason: r.Reason, CreatedAt: r.CreatedAt}
}

// ReportsResponse is the moderation queue. Comment reports whose rating was removed have no rating_id.
type ReportsResponse struct {
	GameCards []ReportResponse `json:"game_cards"`
	Comments  []ReportResponse `json:"comments"`
}

// ReportGameCard godoc
// @Summary      Report a game card
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int         true "Game card ID"
// @Param        input body ReportInput true "Reason"
// @Success      201 {object} ReportResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/{id}/report [post]
func (h *Handler) ReportGameCard(c *gin.Context) {
	cardID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	report, err := h.svc.Reports.ReportGameCard(c.Request.Context(), currentUser(c), cardID, input.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGameCardReportResponse(*report))
}

// ReportComment godoc
// @Summary      Report a rating comment
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int         true "Rating ID"
// @Param        input body ReportInput true "Reason"
// @Success      201 {object} ReportResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Rating not found"
// @Router       /ratings/{id}/report [post]
func (h *Handler) ReportComment(c *gin.Context) {
	ratingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	report, err := h.svc.Reports.ReportComment(c.Request.Context(), currentUser(c), ratingID, input.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentReportResponse(*report))
}

// ListReports godoc
// @Summary      List open reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ReportsResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Moderator access required"
// @Router       /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.svc.Reports.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := ReportsResponse{
		GameCards: make([]ReportResponse, len(reports.GameCards)),
		Comments:  make([]ReportResponse, len(reports.Comments)),
	}
	for i, r := range reports.GameCards {
		response.GameCards[i] = newGameCardReportResponse(r)
	}
	for i, r := range reports.Comments {
		response.Comments[i] = newCommentReportResponse(r)
	}
	c.JSON(http.StatusOK, response)
}
