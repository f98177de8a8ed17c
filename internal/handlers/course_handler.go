package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
	"github.com/pensacomp/lms-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// CreateCourse registers a new course
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param course body validator.CourseRequest true "Course data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /create-course [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req validator.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "course created", "course_id", course.ID)
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: course})
}

// EditCourse updates an existing course
// @Summary Edit a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param course body validator.CourseRequest true "Course data"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /edit-course/{id} [put]
func (h *CourseHandler) EditCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: course})
}

// GetCourse returns the public projection of a course
// @Summary Get a course
// @Description Paid material (videos, links, questions) is stripped
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /get-course/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	course, err := h.courseService.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: course})
}

// GetCourses lists the catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /get-courses [get]
func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.courseService.ListPublic(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: courses})
}

// GetCourseContent returns the full sections of a purchased course
// @Summary Get course content
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /get-course-content/{id} [get]
func (h *CourseHandler) GetCourseContent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	user := UserFromContext(c)
	sections, err := h.courseService.GetContent(c.Request.Context(), id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: sections})
}

// AddQuestion posts a question on a course section
func (h *CourseHandler) AddQuestion(c *gin.Context) {
	var req validator.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.AddQuestion(c.Request.Context(), UserFromContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: course})
}

// AddAnswer replies to a question; the asker is notified by mail
func (h *CourseHandler) AddAnswer(c *gin.Context) {
	var req validator.AddAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.AddAnswer(c.Request.Context(), UserFromContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: course})
}

// AddReview rates a purchased course
// @Summary Review a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param review body validator.AddReviewRequest true "Rating and comment"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /add-review/{id} [put]
func (h *CourseHandler) AddReview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.AddReview(c.Request.Context(), UserFromContext(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: course})
}

// AddReply answers a review
func (h *CourseHandler) AddReply(c *gin.Context) {
	var req validator.AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.AddReviewReply(c.Request.Context(), UserFromContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: course})
}
