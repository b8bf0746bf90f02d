package handler

import (
	"net/http"

	"icebreaker/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CategoryInput is the request body for creating a category.
type CategoryInput struct {
	Name string `json:"name" binding:"required,max=50"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ListCategories godoc
// @Summary      Get all categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   CategoryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Categories.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = newCategoryResponse(category)
	}
	c.JSON(http.StatusOK, response)
}

// CreateCategory godoc
// @Summary      Create a new category
// @Description  Creates a new category for game cards.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CategoryInput true "Category Info"
// @Success      201  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Moderator access required"
// @Failure      409  {object}  ErrorResponse "Category already exists"
// @Router       /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.svc.Categories.Create(c.Request.Context(), input.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCategoryResponse(*category))
}
