package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
	"github.com/pensacomp/lms-service/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderHandler struct {
	BaseHandler
	orderService  services.OrderService
	reportService services.ReportService
}

func NewOrderHandler(orderService services.OrderService, reportService services.ReportService, logger utils.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:   NewBaseHandler(logger),
		orderService:  orderService,
		reportService: reportService,
	}
}

// CreateOrder purchases a course for the authenticated user
// @Summary Create an order
// @Description Records the purchase, grants course access and mails a confirmation
// @Tags orders
// @Accept json
// @Produce json
// @Param order body validator.CreateOrderRequest true "Course and payment data"
// @Success 201 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /create-order [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	user := UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Não autenticado"})
		return
	}

	var req validator.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "order created", "order_ref", order.Reference, "course_id", order.CourseID)
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: order})
}

// GetOrders lists orders with optional user/course filters
// @Summary List orders
// @Tags orders
// @Produce json
// @Param user_id query int false "Filter by user"
// @Param course_id query int false "Filter by course"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse
// @Router /get-orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	filters := repositories.OrderFilters{
		Limit:  parseQueryInt(c, "limit", 50),
		Offset: parseQueryInt(c, "offset", 0),
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			filters.UserID = &uid
		}
	}
	if v := c.Query("course_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cid := uint(id)
			filters.CourseID = &cid
		}
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"orders": orders, "total": total},
	})
}

// GetOrdersReport streams an xlsx export of all orders
// @Summary Orders spreadsheet
// @Tags orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /get-orders-report [get]
func (h *OrderHandler) GetOrdersReport(c *gin.Context) {
	report, err := h.reportService.OrdersReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("pedidos-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, report)
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
