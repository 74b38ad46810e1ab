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

func setupCartControllerTest(t *testing.T) (*CartController, service.CartService, *gin.Engine, *gorm.DB, *model.User, *model.Part) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	partRepo := repository.NewPartRepository(testDB)
	equipmentRepo := repository.NewEquipmentRepository(testDB)
	cartService := service.NewCartService(cartRepo, partRepo, equipmentRepo)
	cartController := NewCartController(cartService)

	user := &model.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        "test@example.com",
		PasswordHash: "hash",
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

	return cartController, cartService, router, testDB, user, part
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, cartService, router, _, user, part := setupCartControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 2)
	require.NoError(t, err)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, float64(10000), response["total"]) // 5000 * 2
}

func TestCartController_GetCart_Empty(t *testing.T) {
	controller, _, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(0), response["count"])
	assert.Equal(t, float64(0), response["total"])
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, _, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "AUTH_UNAUTHORIZED", response["error"])
}

func TestCartController_AddToCart_Success(t *testing.T) {
	controller, _, router, _, user, part := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	reqBody := AddToCartRequest{
		ItemType: model.ItemTypePart,
		ItemID:   part.ID,
		Quantity: 2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "item added to cart", response["message"])
}

func TestCartController_AddToCart_PartNotFound(t *testing.T) {
	controller, _, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	reqBody := AddToCartRequest{
		ItemType: model.ItemTypePart,
		ItemID:   9999,
		Quantity: 2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "CATALOG_PART_NOT_FOUND", response["error"])
}

func TestCartController_AddToCart_InvalidItemType(t *testing.T) {
	controller, _, router, _, user, part := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	reqBody := map[string]interface{}{
		"item_type": "subscription",
		"item_id":   part.ID,
		"quantity":  1,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "CART_INVALID_ITEM_TYPE", response["error"])
}

func TestCartController_AddToCart_Unauthorized(t *testing.T) {
	controller, _, router, _, _, part := setupCartControllerTest(t)

	router.POST("/cart", controller.AddToCart)

	reqBody := AddToCartRequest{
		ItemType: model.ItemTypePart,
		ItemID:   part.ID,
		Quantity: 2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_AddToCart_InvalidRequest(t *testing.T) {
	controller, _, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	tests := []struct {
		name    string
		reqBody map[string]interface{}
	}{
		{
			name:    "Missing item_id",
			reqBody: map[string]interface{}{"item_type": "part", "quantity": 2},
		},
		{
			name:    "Missing quantity",
			reqBody: map[string]interface{}{"item_type": "part", "item_id": 1},
		},
		{
			name:    "Zero quantity",
			reqBody: map[string]interface{}{"item_type": "part", "item_id": 1, "quantity": 0},
		},
		{
			name:    "Negative quantity",
			reqBody: map[string]interface{}{"item_type": "part", "item_id": 1, "quantity": -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])
		})
	}
}

func TestCartController_UpdateCartItem_Success(t *testing.T) {
	controller, cartService, router, _, user, part := setupCartControllerTest(t)

	cart, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("/cart/%d", cart.Items[0].ID)
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	updated, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5, updated.Items[0].Quantity)
}

func TestCartController_UpdateCartItem_NotFound(t *testing.T) {
	controller, _, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/9999", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "CART_ITEM_NOT_FOUND", response["error"])
}

func TestCartController_UpdateCartItem_InvalidID(t *testing.T) {
	controller, _, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	reqBody := UpdateCartItemRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/invalid", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION_INVALID_ID", response["error"])
}

func TestCartController_RemoveFromCart_Success(t *testing.T) {
	controller, cartService, router, _, user, part := setupCartControllerTest(t)

	cart, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	url := fmt.Sprintf("/cart/%d", cart.Items[0].ID)
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	updated, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Items, 0)
}

func TestCartController_RemoveFromCart_NotFound(t *testing.T) {
	controller, _, router, _, user, _ := setupCartControllerTest(t)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "CART_ITEM_NOT_FOUND", response["error"])
}

func TestCartController_ClearCart_Success(t *testing.T) {
	controller, cartService, router, testDB, user, part := setupCartControllerTest(t)

	_, err := cartService.AddToCart(user.ID, model.ItemTypePart, part.ID, 2)
	require.NoError(t, err)

	router.DELETE("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ClearCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.Cart{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartController_ClearCart_Unauthorized(t *testing.T) {
	controller, _, router, _, _, _ := setupCartControllerTest(t)

	router.DELETE("/cart", controller.ClearCart)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
