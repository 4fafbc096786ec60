package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// payment gateway ภายนอก
	PaymentBaseURL string
	PaymentAPIKey  string
	Currency       string

	// pricing defaults (override ได้ผ่าน Settings provider)
	VATRate        float64
	PriceTolerance int64
}

func LoadConfig() *Config {
	// .env ไม่มีก็ไม่เป็นไร (เช่นตอนรัน CI)
	_ = godotenv.Load()

	return &Config{
		DBSource:       getEnv("DB_SOURCE", "beantomug.db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         time.Duration(24) * time.Hour,
		PaymentBaseURL: getEnv("PAYMENT_BASE_URL", ""),
		PaymentAPIKey:  os.Getenv("PAYMENT_API_KEY"),
		Currency:       getEnv("CURRENCY", "THB"),
		VATRate:        getEnvFloat("VAT_RATE", 0.07),
		PriceTolerance: getEnvInt64("PRICE_TOLERANCE", 0),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("invalid float env %s: %v", key, err)
		}
		return f
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("invalid int env %s: %v", key, err)
		}
		return n
	}
	return fallback
}
