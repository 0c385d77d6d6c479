package db

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre a conexão Postgres usando as variáveis de ambiente
// DB_HOST, DB_PORT, DB_NAME e, para credenciais, DB_USERNAME/DB_PASSWORD
// ou DB_SECRET_ID (Secrets Manager).
func Conectar() (*gorm.DB, error) {
	host := getenv("DB_HOST", "localhost")
	dbname := getenv("DB_NAME", "iselftoken")
	port, err := strconv.ParseUint(getenv("DB_PORT", "5432"), 10, 32)
	if err != nil {
		port = 5432
	}

	username, password, err := retrieveCredentials(os.Getenv("DB_SECRET_ID"))
	if err != nil {
		return nil, fmt.Errorf("credenciais do banco: %w", err)
	}

	sslMode := ""
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		host, username, password, dbname, port, sslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
