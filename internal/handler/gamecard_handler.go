package handler

import (
	"net/http"
	"strconv"
	"strings"

	"icebreaker/backend/internal/auth"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// GameCardInput is the request body for creating or updating a game card.
type GameCardInput struct {
	Title       string   `json:"title" binding:"required,max=200" example:"Two truths and a lie"`
	Rules       string   `json:"rules" example:"Each player states three facts, one of them false."`
	Description string   `json:"description" example:"A classic introduction round."`
	Categories  []string `json:"categories" example:"icebreaker,group"` // Names; unknown ones are ignored
}

// FilterInput selects cards in any of the given categories, by ID or by name.
type FilterInput struct {
	CategoryIDs []uint   `json:"category_ids"`
	Categories  []string `json:"categories"`
}

// GameCardResponse is a game card with its rating summary.
type GameCardResponse struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Rules         string   `json:"rules"`
	Description   string   `json:"description"`
	Creator       string   `json:"creator"`
	Categories    []string `json:"categories"`
	AverageRating *float64 `json:"average_rating"`
	RatingCount   int64    `json:"rating_count"`
	IsFavorite    bool     `json:"is_favorite"`
}

func newGameCardResponse(view models.GameCardView, favoriteIDs map[uint]bool) GameCardResponse {
	categories := view.Categories
	if categories == nil {
		categories = []string{}
	}
	return GameCardResponse{
		ID:            view.ID,
		Title:         view.Title,
		Rules:         view.Rules,
		Description:   view.Description,
		Creator:       view.Creator,
		Categories:    categories,
		AverageRating: view.AverageRating,
		RatingCount:   view.RatingCount,
		IsFavorite:    favoriteIDs[view.ID],
	}
}

func newGameCardResponses(views []models.GameCardView, favoriteIDs map[uint]bool) []GameCardResponse {
	out := make([]GameCardResponse, len(views))
	for i, v := range views {
		out[i] = newGameCardResponse(v, favoriteIDs)
	}
	return out
}

// PaginatedGameCardResponse defines the structure for a paginated list of game cards.
type PaginatedGameCardResponse struct {
	Data []GameCardResponse `json:"data"`
	Meta PaginationMeta     `json:"meta"`
}

// DeletionResponse reports what a card deletion cleaned up.
type DeletionResponse struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	ScrubbedUsers  int    `json:"scrubbed_users"`
	RemovedRatings int    `json:"removed_ratings"`
}

func newDeletionResponse(r *service.DeletionResult) DeletionResponse {
	return DeletionResponse{
		ID:             r.Card.ID,
		Title:          r.Card.Title,
		ScrubbedUsers:  r.ScrubbedUsers,
		RemovedRatings: r.RemovedRatings,
	}
}

// endregion

// region --- Public Handlers ---

// ListGameCards godoc
// @Summary      List game cards
// @Description  Returns game cards ranked by average rating, unrated cards last. Optionally restricted to any of the given categories.
// @Tags         gamecards
// @Produce      json
// @Param        categories query     string  false  "Comma-separated list of Category IDs"
// @Param        page       query     int     false  "Page number" default(1)
// @Param        limit      query     int     false  "Items per page" default(20)
// @Success      200 {object} PaginatedGameCardResponse
// @Failure      400 {object} ErrorResponse
// @Router       /gamecards [get]
func (h *Handler) ListGameCards(c *gin.Context) {
	page, limit := pageParams(c)

	var (
		views []models.GameCardView
		err   error
	)
	if raw := c.Query("categories"); raw != "" {
		ids, parseErr := parseIDList(raw)
		if parseErr != nil {
			badRequest(c, parseErr)
			return
		}
		views, err = h.svc.Catalog.ListByCategories(c.Request.Context(), ids)
	} else {
		views, err = h.svc.Catalog.ListAll(c.Request.Context())
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	favorites := h.favoriteSet(c)
	c.JSON(http.StatusOK, Paginate(newGameCardResponses(views, favorites), page, limit))
}

// FilterGameCards godoc
// @Summary      Filter game cards by categories
// @Description  Returns ranked cards belonging to any of the given categories, identified by ID or name.
// @Tags         gamecards
// @Accept       json
// @Produce      json
// @Param        input body FilterInput true "Categories"
// @Success      200 {array} GameCardResponse
// @Failure      400 {object} ErrorResponse
// @Router       /gamecards/filter [post]
func (h *Handler) FilterGameCards(c *gin.Context) {
	var input FilterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var (
		views []models.GameCardView
		err   error
	)
	if len(input.Categories) > 0 {
		views, err = h.svc.Catalog.ListByCategoryNames(ctx, input.Categories)
	} else {
		views, err = h.svc.Catalog.ListByCategories(ctx, input.CategoryIDs)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGameCardResponses(views, h.favoriteSet(c)))
}

// GetGameCard godoc
// @Summary      Get a single game card by ID
// @Description  Retrieves a card with its categories, rating aggregate and favorite status.
// @Tags         gamecards
// @Produce      json
// @Param        id path int true "Game card ID"
// @Success      200 {object} GameCardResponse
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/{id} [get]
func (h *Handler) GetGameCard(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.svc.Cards.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameCardResponse(view, h.favoriteSet(c)))
}

// GetGameCardByTitle godoc
// @Summary      Get a single game card by title
// @Tags         gamecards
// @Produce      json
// @Param        title path string true "Game card title"
// @Success      200 {object} GameCardResponse
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/title/{title} [get]
func (h *Handler) GetGameCardByTitle(c *gin.Context) {
	view, err := h.svc.Cards.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameCardResponse(view, h.favoriteSet(c)))
}

// CreateGameCard godoc
// @Summary      Create a new game card
// @Description  Creates a card authored by the current user. Titles are unique.
// @Tags         gamecards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameCardInput true "Game card"
// @Success      201  {object}  GameCardResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Title already in use"
// @Router       /gamecards [post]
func (h *Handler) CreateGameCard(c *gin.Context) {
	var input GameCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	creator, err := h.svc.Accounts.Me(ctx, currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	card, err := h.svc.Cards.Create(ctx, service.AddRequest{
		Title:       input.Title,
		Rules:       input.Rules,
		Description: input.Description,
		Creator:     creator.Username,
		Categories:  input.Categories,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGameCardResponse(models.NewGameCardView(*card, nil), nil))
}

// endregion

// region --- Moderator Handlers ---

// UpdateGameCard godoc
// @Summary      Update a game card
// @Description  Replaces title, rules, description and the whole category set.
// @Tags         gamecards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Game card ID"
// @Param        input body      GameCardInput true  "New card contents"
// @Success      200   {object}  GameCardResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Moderator access required"
// @Failure      404   {object}  ErrorResponse "Game card not found"
// @Failure      409   {object}  ErrorResponse "Title already in use"
// @Router       /gamecards/{id} [put]
func (h *Handler) UpdateGameCard(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var input GameCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.svc.Cards.Update(ctx, service.UpdateRequest{
		ID:          id,
		Title:       input.Title,
		Rules:       input.Rules,
		Description: input.Description,
		Categories:  input.Categories,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	view, err := h.svc.Cards.Get(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameCardResponse(view, nil))
}

// DeleteGameCard godoc
// @Summary      Delete a game card
// @Description  Deletes a card after removing it from every user's favorites and queue.
// @Tags         gamecards
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game card ID"
// @Success      200 {object} DeletionResponse
// @Failure      403 {object} ErrorResponse "Moderator access required"
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/{id} [delete]
func (h *Handler) DeleteGameCard(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.Deletion.DeleteByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeletionResponse(result))
}

// DeleteGameCardByTitle godoc
// @Summary      Delete a game card by title
// @Tags         gamecards
// @Produce      json
// @Security     BearerAuth
// @Param        title path string true "Game card title"
// @Success      200 {object} DeletionResponse
// @Failure      403 {object} ErrorResponse "Moderator access required"
// @Failure      404 {object} ErrorResponse "Game card not found"
// @Router       /gamecards/title/{title} [delete]
func (h *Handler) DeleteGameCardByTitle(c *gin.Context) {
	result, err := h.svc.Deletion.DeleteByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeletionResponse(result))
}

// endregion

// favoriteSet loads the signed-in user's favorites. Anonymous callers get an empty set.
func (h *Handler) favoriteSet(c *gin.Context) map[uint]bool {
	userID, ok := auth.UserID(c)
	if !ok {
		return nil
	}
	ids, err := h.svc.Collection.FavoriteIDs(c.Request.Context(), userID)
	if err != nil {
		h.log.Warn("failed to load favorites", zap.Uint("user_id", userID), zap.Error(err))
		return nil
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// parseIDList parses a comma-separated list of numeric IDs, skipping blanks.
func parseIDList(s string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
