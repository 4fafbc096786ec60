package routes

import (
	"github.com/SalamHyped/BeanToMug-sub000/configs"
	"github.com/SalamHyped/BeanToMug-sub000/controllers"
	"github.com/SalamHyped/BeanToMug-sub000/middlewares"
	"github.com/SalamHyped/BeanToMug-sub000/pkg/payment"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"github.com/SalamHyped/BeanToMug-sub000/services"
	"github.com/SalamHyped/BeanToMug-sub000/ws"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, settings configs.Settings, gateway payment.Gateway, hub *ws.StockHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	catalogRepo := repository.NewCatalogRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	resolver := services.NewCustomizationService()
	pricing := services.NewPricingService(catalogRepo, resolver, settings)
	cartSvc := services.NewCartService(db, cartRepo, orderRepo, pricing)
	inventory := services.NewInventoryService(ingredientRepo, hub)
	checkout := services.NewCheckoutService(db, orderRepo, cartRepo, pricing, inventory, gateway, settings, cfg.Currency)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	menuCtrl := controllers.NewMenuController(catalogRepo, pricing)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkout)
	orderCtrl := controllers.NewOrderController(orderRepo, checkout)
	authCtrl := controllers.NewAuthController(authSvc, cartSvc)

	// ทุก request มี session bag (ตะกร้า guest อยู่ในนี้)
	sessions := middlewares.NewSessionStore()
	r.Use(sessions.Middleware())

	// Menu (public)
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)
	r.POST("/menu/:id/quote", menuCtrl.Quote)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login) // login แล้ว merge ตะกร้า session เข้าตะกร้า user
	}

	// Cart + Checkout — guest และ user ใช้เส้นทางเดียวกัน
	shop := r.Group("/", middlewares.OptionalAuth(cfg.JWTSecret))
	{
		shop.GET("/cart", cartCtrl.Get)
		shop.POST("/cart/items", cartCtrl.Add)
		shop.PATCH("/cart/items/:id", cartCtrl.UpdateQty)
		shop.DELETE("/cart/items/:id", cartCtrl.RemoveLine)
		shop.DELETE("/cart", cartCtrl.Clear)
		shop.PATCH("/cart/order-type", cartCtrl.SetOrderType)

		shop.POST("/checkout", checkoutCtrl.Begin)
		shop.POST("/checkout/capture", checkoutCtrl.Capture)
		shop.POST("/checkout/cancel", checkoutCtrl.Cancel)
	}

	// Orders (user เท่านั้น — guest ดู order ผ่าน paymentRef ตอน capture)
	u := r.Group("/orders", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.GET("", orderCtrl.ListForMe)
		u.GET("/:id", orderCtrl.Detail)
		u.POST("/:id/cancel", orderCtrl.CancelProcessing)
	}

	// Dashboard ครัวดู stock event สด ๆ
	r.GET("/ws/stock", hub.HandleWebSocket)
}
