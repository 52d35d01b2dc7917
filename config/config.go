/*
Package config loads server configuration from the environment.

A local .env file is read first (development convenience); real
environment variables win. Every key has a default, so a bare
`go run ./cmd/server` works with in-process state and flat files in
the working directory.

KEYS:

	PORT            HTTP port                    (default 8080)
	DB_PATH         SQLite path, empty = no DB   (default "")
	CUSTOMERS_FILE  customer records file        (default clientes.txt)
	PRODUCTS_FILE   product records file         (default produtos.txt)
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	Port          int
	DBPath        string
	CustomersFile string
	ProductsFile  string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Port:          getIntEnv("PORT", 8080),
		DBPath:        getEnv("DB_PATH", ""),
		CustomersFile: getEnv("CUSTOMERS_FILE", "clientes.txt"),
		ProductsFile:  getEnv("PRODUCTS_FILE", "produtos.txt"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
