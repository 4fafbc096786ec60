package main

import (
	"fmt"
	"log"
	"time"

	"github.com/SalamHyped/BeanToMug-sub000/configs"
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/middlewares"
	"github.com/SalamHyped/BeanToMug-sub000/pkg/payment"
	"github.com/SalamHyped/BeanToMug-sub000/routes"
	"github.com/SalamHyped/BeanToMug-sub000/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// join table (many2many MenuItem<->IngredientType มีคอลัมน์ required)
	// ต้อง register ทั้งสองฝั่ง ไม่งั้น migrate ฝั่งที่เหลือจะสร้างตารางแบบ 2 คอลัมน์ทับ
	if err := db.SetupJoinTable(&entity.MenuItem{}, "IngredientTypes", &entity.ItemIngredientType{}); err != nil {
		log.Fatalf("setup join table failed: %v", err)
	}
	if err := db.SetupJoinTable(&entity.IngredientType{}, "MenuItems", &entity.ItemIngredientType{}); err != nil {
		log.Fatalf("setup join table failed: %v", err)
	}

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}
	if err := configs.SeedDemoMenu(); err != nil {
		log.Fatalf("seed demo menu failed: %v", err)
	}

	// ค่า VAT/tolerance refresh เองทุก 5 นาที
	settings := configs.NewEnvSettings(5 * time.Minute)

	// payment gateway — ไม่ตั้ง PAYMENT_BASE_URL จะได้ mock (dev เท่านั้น)
	var gateway payment.Gateway
	if cfg.PaymentBaseURL != "" {
		gateway = payment.NewHTTPGateway(cfg.PaymentBaseURL, cfg.PaymentAPIKey)
	} else {
		log.Println("⚠️ PAYMENT_BASE_URL not set, using mock gateway")
		gateway = payment.NewMockGateway()
	}

	// hub กระจาย stock event ให้ dashboard
	hub := ws.NewStockHub()
	go hub.Run()

	// HTTP
	r := gin.Default()

	// ✅ Enable CORS
	r.Use(middlewares.CORSMiddleware())

	// ✅ Register API routes
	routes.RegisterRoutes(r, db, cfg, settings, gateway, hub)

	// ✅ Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
