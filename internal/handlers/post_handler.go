package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
	"github.com/pensacomp/lms-service/internal/validator"
)

type PostHandler struct {
	BaseHandler
	postService services.PostService
}

func NewPostHandler(postService services.PostService, logger utils.Logger) *PostHandler {
	return &PostHandler{
		BaseHandler: NewBaseHandler(logger),
		postService: postService,
	}
}

// CreatePost publishes a blog post; the slug is derived from the title
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body validator.PostCreateRequest true "Post data"
// @Success 201 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req validator.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "post created", "slug", post.Slug)
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: post})
}

// GetPost returns a post by slug
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{slug} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: post})
}

// ListPosts lists posts, optionally filtered by tag
// @Summary List posts
// @Tags posts
// @Produce json
// @Param tag query string false "Filter by tag"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	filters := repositories.PostFilters{
		Tag:    c.Query("tag"),
		Limit:  parseQueryInt(c, "limit", 50),
		Offset: parseQueryInt(c, "offset", 0),
	}

	posts, total, err := h.postService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"posts": posts, "total": total},
	})
}

// UpdatePost patches a post; a title change re-derives the slug
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req validator.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: post})
}

// DeletePost removes a post by slug
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Post removido com sucesso",
	})
}
