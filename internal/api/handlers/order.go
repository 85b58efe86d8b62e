package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"MockECommerce/internal/api/domain/order"
	"MockECommerce/internal/api/middleware"
	"MockECommerce/internal/api/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const OrderBasePath = "/api/v1/order"

type OrderHandler struct {
	service          *order.OrderService
	enforceOwnership bool
}

func NewOrderHandler(s *order.OrderService, enforceOwnership bool) *OrderHandler {
	return &OrderHandler{service: s, enforceOwnership: enforceOwnership}
}

// RegisterRoutes mounts the order endpoints on group, which must already
// authenticate the caller.
func (h *OrderHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", middleware.RequireRoles(middleware.RoleAdmin), h.GetAll)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.DELETE("/:id", h.Delete)
	group.GET("/:id/history", middleware.RequireRoles(middleware.RoleAdmin), h.History)
	group.PUT("/:id/status", middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleSeller), h.UpdateStatus)
	group.GET("/customer/:customerId", h.GetByCustomer)
	group.GET("/seller/:sellerId", middleware.RequireRoles(middleware.RoleSeller), h.GetBySeller)
	group.GET("/seller/order/:orderId", middleware.RequireRoles(middleware.RoleSeller), h.GetForSeller)
}

func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.service.GetAllOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", order.ErrInvalidOrderID)
	if !ok {
		return
	}

	if !h.canAccessOrder(c, id, true) {
		return
	}

	dto, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, dto)
}

// History lists the recorded lifecycle events of one order, oldest first.
func (h *OrderHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id", order.ErrInvalidOrderID)
	if !ok {
		return
	}

	records, err := h.service.GetOrderHistory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, records)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var request order.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.InvalidData(c, bindingErrors(err))
		return
	}

	caller := principal(c)
	if request.CustomerID == uuid.Nil {
		request.CustomerID = caller.UserID
	}
	if h.enforceOwnership && !caller.IsAdmin() && request.CustomerID != caller.UserID {
		forbidden(c)
		return
	}

	dto, err := h.service.CreateOrder(c.Request.Context(), request)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, OrderBasePath+"/"+dto.ID.String(), dto)
}

func (h *OrderHandler) GetBySeller(c *gin.Context) {
	sellerID, ok := pathID(c, "sellerId", order.ErrInvalidSellerID)
	if !ok {
		return
	}
	if !h.canActAs(principal(c), sellerID) {
		forbidden(c)
		return
	}

	orders, err := h.service.GetOrdersBySellerID(c.Request.Context(), sellerID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, orders)
}

// GetForSeller returns a single order as seen by the seller of its product.
func (h *OrderHandler) GetForSeller(c *gin.Context) {
	id, ok := pathID(c, "orderId", order.ErrInvalidOrderID)
	if !ok {
		return
	}

	if !h.canAccessOrder(c, id, false) {
		return
	}

	dto, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, dto)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", order.ErrInvalidOrderID)
	if !ok {
		return
	}

	if !h.canAccessOrder(c, id, true) {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, "Order deleted successfully.")
}

func (h *OrderHandler) GetByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId", order.ErrInvalidCustomerID)
	if !ok {
		return
	}
	if !h.canActAs(principal(c), customerID) {
		forbidden(c)
		return
	}

	orders, err := h.service.GetOrdersByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", order.ErrInvalidOrderID)
	if !ok {
		return
	}

	var request order.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.InvalidData(c, bindingErrors(err))
		return
	}
	if request.ID != id {
		response.Fail(c, http.StatusBadRequest, response.CodeIDMismatch, "ID mismatch.")
		return
	}
	if !h.canAccessOrder(c, id, false) {
		return
	}

	dto, err := h.service.UpdateOrderStatus(c.Request.Context(), &request)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, dto)
}

func (h *OrderHandler) canActAs(caller middleware.Principal, owner uuid.UUID) bool {
	return !h.enforceOwnership || caller.IsAdmin() || caller.UserID == owner
}

// canAccessOrder writes the failure response itself and returns false when
// the order is missing or the caller has no claim on it. A Seller's claim is
// owning the ordered product; a customer's claim, when allowCustomer is set,
// is having placed the order.
func (h *OrderHandler) canAccessOrder(c *gin.Context, id uuid.UUID, allowCustomer bool) bool {
	caller := principal(c)
	if !h.enforceOwnership || caller.IsAdmin() {
		return true
	}

	customerID, sellerID, err := h.service.GetOrderOwnership(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return false
	}
	if caller.HasRole(middleware.RoleSeller) && sellerID == caller.UserID {
		return true
	}
	if allowCustomer && customerID == caller.UserID {
		return true
	}
	forbidden(c)
	return false
}

func principal(c *gin.Context) middleware.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// pathID parses a UUID path parameter; a malformed or nil value fails with invalid.
func pathID(c *gin.Context, name string, invalid *order.Error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		writeError(c, invalid)
		return uuid.Nil, false
	}
	return id, true
}

func forbidden(c *gin.Context) {
	response.Fail(c, http.StatusForbidden, response.CodeForbidden, "You do not have access to this resource.")
}

func writeError(c *gin.Context, err error) {
	var domainErr *order.Error
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Kind {
		case order.KindNotFound:
			status = http.StatusNotFound
		case order.KindUnavailable:
			status = http.StatusServiceUnavailable
		}
		response.Fail(c, status, domainErr.Code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	slog.ErrorContext(c.Request.Context(), "Order request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		slog.Any("error", err))
	response.Fail(c, http.StatusInternalServerError, response.CodeInternal, "An unexpected error occurred.")
}
