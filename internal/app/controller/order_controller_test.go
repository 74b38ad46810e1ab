package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, service.CartService, *gin.Engine, *gorm.DB, *model.User, *model.Part) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	partRepo := repository.NewPartRepository(testDB)
	equipmentRepo := repository.NewEquipmentRepository(testDB)

	cartService := service.NewCartService(cartRepo, partRepo, equipmentRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, testDB, nil, nil)
	orderController := NewOrderController(orderService, nil)

	user := &model.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		PasswordHash:    "hash",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	}
	testDB.Create(user)

	brand := &model.CarBrand{Name: "Opel"}
	testDB.Create(brand)
	carModel := &model.CarModel{Name: "Astra", Year: 2008, CarBrandID: brand.ID}
	testDB.Create(carModel)
	category := &model.PartsCategory{Name: "Brakes"}
	testDB.Create(category)

	part := &model.Part{
		Name:            "Brake Disc",
		Price:           5000,
		CarModelID:      carModel.ID,
		PartsCategoryID: category.ID,
		Manufacturer:    "Bosch",
		Quantity:        10,
	}
	testDB.Create(part)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, cartService, router, testDB, user, part
}

func createOrderRequestBody(payment model.PaymentMethod) CreateOrderRequest {
	return CreateOrderRequest{
		ShippingAddress: "2 Shipping Ave",
		BillingAddress:  "1 Billing St",
		Comment:         "",
		PaymentMethod:   payment,
		ShippingMethod:  model.ShippingMethodCourier,
	}
}

func TestOrderController_CreateOrder_Success(t *testing.T) {
	controller, cartService, router, testDB, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 2)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	order, ok := response["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "processing", order["status"])
	assert.Equal(t, float64(1000), order["extra_fee"])

	items, ok := order["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, float64(6000), item["price"]) // 5000 + cash surcharge
	assert.Equal(t, float64(2), item["quantity"])

	// Checkout destroys the cart
	var cartCount int64
	testDB.Model(&model.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)
}

func TestOrderController_CreateOrder_OnlinePaymentNoSurcharge(t *testing.T) {
	controller, cartService, router, _, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 1)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCardOnline))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	order := response["order"].(map[string]interface{})
	assert.Equal(t, float64(0), order["extra_fee"])
	item := order["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(5000), item["price"])
}

func TestOrderController_CreateOrder_EmptyCart(t *testing.T) {
	controller, _, router, _, user, _ := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ORDER_CART_EMPTY", response["error"])
}

func TestOrderController_CreateOrder_InvalidPaymentMethod(t *testing.T) {
	controller, cartService, router, _, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 1)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethod("crypto")))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "invalid payment method", response["message"])
}

func TestOrderController_CreateOrder_Unauthorized(t *testing.T) {
	controller, _, router, _, _, _ := setupOrderControllerTest(t)

	router.POST("/orders", controller.CreateOrder)

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderController_GetUserOrders(t *testing.T) {
	controller, cartService, router, _, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 1)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetUserOrders(c)
	})

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(1), response["count"])
}

func TestOrderController_GetUserOrderDefaults(t *testing.T) {
	controller, _, router, _, user, _ := setupOrderControllerTest(t)

	router.GET("/orders/user-data", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetUserOrderDefaults(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/user-data", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "test@example.com", response["email"])
	assert.Equal(t, "1 Billing St", response["billing_address"])
	assert.Equal(t, "2 Shipping Ave", response["shipping_address"])
}

func TestOrderController_UpdateOrderStatus_Success(t *testing.T) {
	controller, cartService, router, testDB, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 1)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := uint(created["order"].(map[string]interface{})["id"].(float64))

	statusBody, _ := json.Marshal(UpdateOrderStatusRequest{Status: model.OrderStatusShipped})
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/orders/%d/status", orderID), bytes.NewBuffer(statusBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var order model.Order
	require.NoError(t, testDB.First(&order, orderID).Error)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
}

func TestOrderController_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	controller, cartService, router, _, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 1)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	statusBody, _ := json.Marshal(map[string]string{"status": "lost"})
	req = httptest.NewRequest(http.MethodPut, "/orders/1/status", bytes.NewBuffer(statusBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ORDER_INVALID_STATUS", response["error"])
}

func TestOrderController_UpdateOrderStatus_NotFound(t *testing.T) {
	controller, _, router, _, _, _ := setupOrderControllerTest(t)

	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	statusBody, _ := json.Marshal(UpdateOrderStatusRequest{Status: model.OrderStatusShipped})
	req := httptest.NewRequest(http.MethodPut, "/orders/9999/status", bytes.NewBuffer(statusBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ORDER_NOT_FOUND", response["error"])
}

func TestOrderController_DeleteOrder_Success(t *testing.T) {
	controller, cartService, router, testDB, user, part := setupOrderControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 1)
	require.NoError(t, err)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.DELETE("/orders/:id", controller.DeleteOrder)

	jsonBody, _ := json.Marshal(createOrderRequestBody(model.PaymentMethodCash))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := uint(created["order"].(map[string]interface{})["id"].(float64))

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestOrderController_DeleteOrder_NotFound(t *testing.T) {
	controller, _, router, _, _, _ := setupOrderControllerTest(t)

	router.DELETE("/orders/:id", controller.DeleteOrder)

	req := httptest.NewRequest(http.MethodDelete, "/orders/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ORDER_NOT_FOUND", response["error"])
}
