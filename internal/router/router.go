package router

import (
	"net/http"

	"github.com/autopartshop/autoparts-backend/config"
	"github.com/autopartshop/autoparts-backend/internal/app/controller"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController              *controller.AuthController
	brandController             *controller.CarBrandController
	modelController             *controller.CarModelController
	variantController           *controller.EngineVariantController
	partController              *controller.PartController
	partsCategoryController     *controller.PartsCategoryController
	equipmentController         *controller.EquipmentController
	equipmentCategoryController *controller.EquipmentCategoryController
	cartController              *controller.CartController
	orderController             *controller.OrderController
	uploadController            *controller.UploadController
	authMiddleware              *middleware.AuthMiddleware
	config                      *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	brandController *controller.CarBrandController,
	modelController *controller.CarModelController,
	variantController *controller.EngineVariantController,
	partController *controller.PartController,
	partsCategoryController *controller.PartsCategoryController,
	equipmentController *controller.EquipmentController,
	equipmentCategoryController *controller.EquipmentCategoryController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:              authController,
		brandController:             brandController,
		modelController:             modelController,
		variantController:           variantController,
		partController:              partController,
		partsCategoryController:     partsCategoryController,
		equipmentController:         equipmentController,
		equipmentCategoryController: equipmentCategoryController,
		cartController:              cartController,
		orderController:             orderController,
		uploadController:            uploadController,
		authMiddleware:              authMiddleware,
		config:                      cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "AutoParts API is running",
		})
	})

	authed := r.authMiddleware.Authenticate()
	admin := r.authMiddleware.RequireAdmin()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", authed, r.authController.GetProfile)
			auth.PUT("/me", authed, r.authController.UpdateProfile)
			auth.POST("/admins", authed, admin, r.authController.CreateAdmin)
			auth.GET("/admins", authed, admin, r.authController.ListAdmins)
		}

		cars := v1.Group("/cars")
		{
			cars.GET("", r.brandController.GetBrands)
			cars.GET("/:id", r.brandController.GetBrand)
			cars.POST("", authed, admin, r.brandController.CreateBrand)
			cars.PUT("/:id", authed, admin, r.brandController.UpdateBrand)
			cars.DELETE("/:id", authed, admin, r.brandController.DeleteBrand)

			models := cars.Group("/models")
			{
				models.GET("", r.modelController.GetModels)
				models.GET("/engine-options", r.modelController.GetEngineOptions)
				models.GET("/brand/:brandId", r.modelController.GetModelsByBrand)
				models.GET("/:id", r.modelController.GetModel)
				models.GET("/:id/compatible-years", r.modelController.GetCompatibleYears)
				models.POST("", authed, admin, r.modelController.CreateModel)
				models.PUT("/:id", authed, admin, r.modelController.UpdateModel)
				models.DELETE("/:id", authed, admin, r.modelController.DeleteModel)
			}
		}

		variants := v1.Group("/enginevariants")
		{
			variants.GET("/:id", r.variantController.GetVariant)
			variants.GET("/carmodel/:carModelId", r.variantController.GetVariantsByModel)
			variants.POST("", authed, admin, r.variantController.CreateVariant)
			variants.PUT("/:id", authed, admin, r.variantController.UpdateVariant)
			variants.DELETE("/:id", authed, admin, r.variantController.DeleteVariant)
		}

		parts := v1.Group("/parts")
		{
			parts.GET("", r.partController.GetParts)
			parts.GET("/search", r.partController.SearchParts)
			parts.GET("/compatible", r.partController.GetCompatibleParts)
			parts.GET("/export", authed, admin, r.partController.ExportParts)
			parts.GET("/carmodel/:carModelId", r.partController.GetPartsByModel)

			categories := parts.Group("/categories")
			{
				categories.GET("", r.partsCategoryController.GetCategories)
				categories.GET("/:id", r.partsCategoryController.GetCategory)
				categories.POST("", authed, admin, r.partsCategoryController.CreateCategory)
				categories.PUT("/:id", authed, admin, r.partsCategoryController.UpdateCategory)
				categories.DELETE("/:id", authed, admin, r.partsCategoryController.DeleteCategory)
			}

			parts.GET("/:id", r.partController.GetPart)
			parts.POST("", authed, admin, r.partController.CreatePart)
			parts.PUT("/:id", authed, admin, r.partController.UpdatePart)
			parts.DELETE("/:id", authed, admin, r.partController.DeletePart)
		}

		equipment := v1.Group("/equipment")
		{
			equipment.GET("", r.equipmentController.GetEquipment)
			equipment.GET("/category/:categoryId", r.equipmentController.GetEquipmentByCategory)

			categories := equipment.Group("/categories")
			{
				categories.GET("", r.equipmentCategoryController.GetCategories)
				categories.GET("/:id", r.equipmentCategoryController.GetCategory)
				categories.POST("", authed, admin, r.equipmentCategoryController.CreateCategory)
				categories.PUT("/:id", authed, admin, r.equipmentCategoryController.UpdateCategory)
				categories.DELETE("/:id", authed, admin, r.equipmentCategoryController.DeleteCategory)
			}

			equipment.GET("/:id", r.equipmentController.GetEquipmentByID)
			equipment.POST("", authed, admin, r.equipmentController.CreateEquipment)
			equipment.PUT("/:id", authed, admin, r.equipmentController.UpdateEquipment)
			equipment.DELETE("/:id", authed, admin, r.equipmentController.DeleteEquipment)
		}

		cart := v1.Group("/cart", authed)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders", authed)
		{
			orders.GET("", r.orderController.GetUserOrders)
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("/user-data", r.orderController.GetUserOrderDefaults)
			orders.GET("/all", admin, r.orderController.GetAllOrders)
			orders.GET("/ws", admin, r.orderController.OrderFeed)
			orders.PUT("/:id/status", admin, r.orderController.UpdateOrderStatus)
			orders.DELETE("/:id", admin, r.orderController.DeleteOrder)
		}

		upload := v1.Group("/upload", authed)
		{
			upload.POST("/image", admin, r.uploadController.UploadImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
