package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ItemType model.ItemType `json:"item_type" binding:"required"`
	ItemID   uint           `json:"item_id" binding:"required"`
	Quantity int            `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the user's cart, creating it on first access
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	cart, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "failed to fetch cart")
		return
	}

	var total float64
	for _, item := range cart.Items {
		total += item.Price * float64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"count": len(cart.Items),
		"total": total,
	})
}

// AddToCart adds a part or equipment to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	cart, err := ctrl.cartService.AddToCart(userID, req.ItemType, req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidItemType):
			apperrors.BadRequest(c, apperrors.CartInvalidItemType, "item type must be part or equipment")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "quantity must be positive")
		case errors.Is(err, service.ErrPartNotFound):
			apperrors.NotFound(c, apperrors.CatalogPartNotFound, "part not found")
		case errors.Is(err, service.ErrEquipmentNotFound):
			apperrors.NotFound(c, apperrors.CatalogEquipmentNotFound, "equipment not found")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id": userID,
				"item_id": req.ItemID,
			})
			apperrors.InternalError(c, "failed to add item to cart")
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":   userID,
		"item_type": req.ItemType,
		"item_id":   req.ItemID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "item added to cart",
		"cart":    cart,
	})
}

// UpdateCartItem updates a cart item's quantity
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	if err := ctrl.cartService.UpdateQuantity(userID, id, req.Quantity); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "cart item not found")
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		apperrors.InternalError(c, "failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart item updated",
	})
}

// RemoveFromCart removes an item from the cart
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, id); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		apperrors.InternalError(c, "failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart item removed",
	})
}

// ClearCart removes the cart and all its items
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "authentication required")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart cleared",
	})
}
