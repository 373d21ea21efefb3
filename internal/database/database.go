package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maintenance-system/maintenance-service/internal/logs"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func ensureDatabase(databaseURL string) error {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return fmt.Errorf("database name is empty in url")
	}
	u.Path = "/postgres"
	adminURL := u.String()
	db, err := sql.Open("postgres", adminURL)
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping admin connection: %w", err)
	}
	var exists bool
	if err := db.QueryRow("SELECT true FROM pg_database WHERE datname = $1", dbName).Scan(&exists); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("check database existence: %w", err)
	}
	if exists {
		return nil
	}
	if _, err = db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("create database %q: %w", dbName, err)
	}
	logs.Logger.Infof("database: created %q", dbName)
	return nil
}

// MigrateUp creates the database if needed and applies the embedded
// goose migrations.
func MigrateUp(databaseURL string) error {
	if err := ensureDatabase(databaseURL); err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	defer db.Close()
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// SeedUsers creates the two initial accounts when absent: "solicitante"
// (operator) and "manutencao" (maintenance). Passwords come from
// OPERATOR_PASSWORD / MAINTENANCE_PASSWORD.
func SeedUsers(db *gorm.DB) error {
	seed := []struct {
		username string
		role     model.Role
		envKey   string
	}{
		{"solicitante", model.RoleOperator, "OPERATOR_PASSWORD"},
		{"manutencao", model.RoleMaintenance, "MAINTENANCE_PASSWORD"},
	}
	for _, s := range seed {
		var existing model.User
		err := db.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("check user %q: %w", s.username, err)
		}
		password := os.Getenv(s.envKey)
		if password == "" {
			password = "default_password"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", s.username, err)
		}
		user := &model.User{
			Username:     s.username,
			PasswordHash: string(hash),
			Role:         s.role,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user %q: %w", s.username, err)
		}
		logs.Logger.Infof("seed: created user %q (%s)", s.username, s.role)
	}
	return nil
}
