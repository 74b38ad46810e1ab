package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	ws "github.com/autopartshop/autoparts-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var orderFeedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type OrderController struct {
	orderService service.OrderService
	hub          *ws.Hub
}

func NewOrderController(orderService service.OrderService, hub *ws.Hub) *OrderController {
	return &OrderController{
		orderService: orderService,
		hub:          hub,
	}
}

type CreateOrderRequest struct {
	ShippingAddress string               `json:"shipping_address" binding:"required"`
	BillingAddress  string               `json:"billing_address" binding:"required"`
	Comment         string               `json:"comment" binding:"max=200"`
	PaymentMethod   model.PaymentMethod  `json:"payment_method" binding:"required"`
	ShippingMethod  model.ShippingMethod `json:"shipping_method" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder converts the user's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	order, err := ctrl.orderService.CreateOrder(userID, service.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Comment:         req.Comment,
		PaymentMethod:   req.PaymentMethod,
		ShippingMethod:  req.ShippingMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.OrderCartEmpty, "cart is empty")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid payment method")
		case errors.Is(err, service.ErrInvalidShipping):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid shipping method")
		case errors.Is(err, service.ErrMissingAddress):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "shipping and billing addresses are required")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "failed to create order")
		}
		return
	}

	log.Info("Order created", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "order created",
		"order":   order,
	})
}

// GetUserOrders returns the user's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetAllOrders returns every order for the admin dashboard
// GET /api/v1/orders/all
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAllOrders()
	if err != nil {
		log.Error("Failed to fetch all orders", err)
		apperrors.InternalError(c, "failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetUserOrderDefaults returns profile data for checkout prefill
// GET /api/v1/orders/user-data
func (ctrl *OrderController) GetUserOrderDefaults(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	defaults, err := ctrl.orderService.GetUserOrderDefaults(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "user not found")
			return
		}
		log.Error("Failed to fetch order defaults", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "failed to fetch order defaults")
		return
	}

	c.JSON(http.StatusOK, defaults)
}

// UpdateOrderStatus sets an order's status
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "invalid order status")
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "order not found")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "failed to update order status")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "order status updated",
	})
}

// DeleteOrder removes an order and its items
// DELETE /api/v1/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.orderService.DeleteOrder(id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "order not found")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "failed to delete order")
		return
	}

	log.Info("Order deleted", map[string]interface{}{
		"order_id": id,
	})

	c.Status(http.StatusNoContent)
}

// OrderFeed upgrades the connection and streams new orders to admins
// GET /api/v1/orders/ws
func (ctrl *OrderController) OrderFeed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	conn, err := orderFeedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade order feed connection", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := ws.NewClient(ctrl.hub, conn, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
