package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the optional env file and fails fast on values that would
// leave the process serving in a broken state.
func Load() {
	if file := os.Getenv("TINYDEM_ENV_FILE"); file != "" {
		if err := godotenv.Load(file); err != nil {
			log.Fatalf("Env file %s not found", file)
		}
	} else {
		_ = godotenv.Load()
	}

	if DBDriver() != "sqlite3" && DBDriver() != "mysql" {
		log.Fatalf("DB_DRIVER must be sqlite3 or mysql, got %q", DBDriver())
	}
	// The mysql driver needs parseTime=true in the DSN to scan the
	// session timestamps.
	if DBDriver() == "mysql" && os.Getenv("DB_DSN") == "" {
		log.Fatalf("DB_DSN is not set in environment")
	}
	BcryptCost()
}

func DBDriver() string {
	return getenv("DB_DRIVER", "sqlite3")
}

func DBDSN() string {
	return getenv("DB_DSN", "credentials.db")
}

func Addr() string {
	return getenv("ADDR", "127.0.0.1:8080")
}

func TemplatesDir() string {
	return getenv("TEMPLATES_DIR", "./templates")
}

func StaticDir() string {
	return getenv("STATIC_DIR", "./static")
}

// BcryptCost is the password hash work factor. The hasher rejects
// out-of-range values at startup.
func BcryptCost() int {
	v := os.Getenv("BCRYPT_COST")
	if v == "" {
		return 10
	}
	cost, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("BCRYPT_COST is not a number: %q", v)
	}
	return cost
}

func CookieSecure() bool {
	v := os.Getenv("COOKIE_SECURE")
	return v == "1" || v == "true"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
