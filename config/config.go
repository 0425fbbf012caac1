package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Pricing is the buffet price policy applied when a table is opened. Adult
// and child prices are snapshotted onto the new check; the refill charge is
// a flat per-head amount applied at billing time.
type Pricing struct {
	AdultPrice  decimal.Decimal
	ChildPrice  decimal.Decimal
	RefillPrice decimal.Decimal
}

type Config struct {
	Port    string
	DBPath  string
	Pricing Pricing
}

// Load reads configuration from the environment, with a .env file as a
// fallback for local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:   getEnv("PORT", "5000"),
		DBPath: getEnv("DATABASE_PATH", "buffet.db"),
		Pricing: Pricing{
			AdultPrice:  getDecimal("ADULT_PRICE", "299.00"),
			ChildPrice:  getDecimal("CHILD_PRICE", "199.00"),
			RefillPrice: getDecimal("REFILL_PRICE", "29.00"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDecimal(key, fallback string) decimal.Decimal {
	v := getEnv(key, fallback)
	d, err := decimal.NewFromString(v)
	if err != nil {
		log.Printf("Invalid decimal value for %s: %q, using default %s", key, v, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
