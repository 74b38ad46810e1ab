package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, service.AuthService, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", time.Hour)
	authController := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return authController, authService, router, testDB
}

func registerRequestBody() RegisterRequest {
	return RegisterRequest{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	}
}

func TestAuthController_Register_Success(t *testing.T) {
	controller, _, router, _ := setupAuthControllerTest(t)

	router.POST("/register", controller.Register)

	jsonBody, _ := json.Marshal(registerRequestBody())
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	user, ok := response["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, false, user["is_admin"])

	// Password hash must never leak through the JSON envelope
	_, exposed := user["password_hash"]
	assert.False(t, exposed)
}

func TestAuthController_Register_NormalizesEmail(t *testing.T) {
	controller, _, router, _ := setupAuthControllerTest(t)

	router.POST("/register", controller.Register)

	body := registerRequestBody()
	body.Email = "Test@Example.com"
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	user, ok := response["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "test@example.com", user["email"])
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	controller, authService, router, _ := setupAuthControllerTest(t)

	_, err := authService.Register(service.RegisterInput{
		FirstName:       "Existing",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	router.POST("/register", controller.Register)

	jsonBody, _ := json.Marshal(registerRequestBody())
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "AUTH_EMAIL_EXISTS", response["error"])
}

func TestAuthController_Register_InvalidRequest(t *testing.T) {
	controller, _, router, _ := setupAuthControllerTest(t)

	router.POST("/register", controller.Register)

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{
			name:   "Missing password",
			mutate: func(r *RegisterRequest) { r.Password = "" },
		},
		{
			name:   "Short password",
			mutate: func(r *RegisterRequest) { r.Password = "short" },
		},
		{
			name:   "Malformed email",
			mutate: func(r *RegisterRequest) { r.Email = "not-an-email" },
		},
		{
			name:   "Missing phone number",
			mutate: func(r *RegisterRequest) { r.PhoneNumber = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := registerRequestBody()
			tt.mutate(&body)

			jsonBody, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonBody))
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

func TestAuthController_Login_Success(t *testing.T) {
	controller, authService, router, _ := setupAuthControllerTest(t)

	_, err := authService.Register(service.RegisterInput{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	router.POST("/login", controller.Login)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	token, ok := response["token"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, token)
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	controller, authService, router, _ := setupAuthControllerTest(t)

	_, err := authService.Register(service.RegisterInput{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	router.POST("/login", controller.Login)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", response["error"])
}

func TestAuthController_Login_UnknownEmail(t *testing.T) {
	controller, _, router, _ := setupAuthControllerTest(t)

	router.POST("/login", controller.Login)

	reqBody := LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", response["error"])
}

func TestAuthController_GetProfile_Success(t *testing.T) {
	controller, authService, router, _ := setupAuthControllerTest(t)

	user, err := authService.Register(service.RegisterInput{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	router.GET("/me", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetProfile(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	profile, ok := response["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "test@example.com", profile["email"])
}

func TestAuthController_GetProfile_Unauthorized(t *testing.T) {
	controller, _, router, _ := setupAuthControllerTest(t)

	router.GET("/me", controller.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateProfile_Success(t *testing.T) {
	controller, authService, router, _ := setupAuthControllerTest(t)

	user, err := authService.Register(service.RegisterInput{
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	router.PUT("/me", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateProfile(c)
	})

	reqBody := UpdateProfileRequest{
		ShippingAddress: "3 New Shipping Rd",
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/me", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	profile, ok := response["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "3 New Shipping Rd", profile["shipping_address"])
	assert.Equal(t, "Test", profile["first_name"]) // untouched fields survive
}

func TestAuthController_CreateAdmin_Success(t *testing.T) {
	controller, _, router, _ := setupAuthControllerTest(t)

	router.POST("/admins", controller.CreateAdmin)

	body := registerRequestBody()
	body.Email = "admin@example.com"
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/admins", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	user, ok := response["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, user["is_admin"])
}

func TestAuthController_ListAdmins(t *testing.T) {
	controller, authService, router, testDB := setupAuthControllerTest(t)

	_, err := authService.Register(service.RegisterInput{
		FirstName:       "Regular",
		LastName:        "User",
		Email:           "user@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	_, err = authService.CreateAdmin(service.RegisterInput{
		FirstName:       "Admin",
		LastName:        "User",
		Email:           "admin@example.com",
		Password:        "password123",
		Address:         "1 Billing St",
		ShippingAddress: "2 Shipping Ave",
		PhoneNumber:     "+36201234567",
	})
	require.NoError(t, err)

	var total int64
	testDB.Model(&model.User{}).Count(&total)
	require.Equal(t, int64(2), total)

	router.GET("/admins", controller.ListAdmins)

	req := httptest.NewRequest(http.MethodGet, "/admins", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(1), response["count"])
	admins, ok := response["admins"].([]interface{})
	require.True(t, ok)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].(map[string]interface{})["email"])
}
