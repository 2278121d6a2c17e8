package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"blog-api/config"
	"blog-api/internal/domain/blog"
	"blog-api/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	db, err := Open(config.DB_DRIVER, config.DB_URL)
	if err != nil {
		slog.Error("failed to connect to database", "driver", config.DB_DRIVER, "error", err)
		os.Exit(1)
	}

	if err := Migrate(db); err != nil {
		slog.Error("auto-migrate failed", "error", err)
		os.Exit(1)
	}

	if config.ADMIN_EMAIL != "" && config.ADMIN_PASSWORD != "" {
		if err := SeedAdmin(db, config.ADMIN_EMAIL, config.ADMIN_PASSWORD); err != nil {
			slog.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	DB = db
	slog.Info("database connected and migrated", "driver", config.DB_DRIVER)
}

// Open connects with the given driver ("postgres" or "sqlite"). Timestamps
// come from blog.Now so every driver stores UTC at microsecond precision.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc:        blog.Now,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&blog.Post{}, "Categories", &blog.PostCategoryLink{}); err != nil {
		return fmt.Errorf("setup posts_categories join table: %w", err)
	}

	if err := db.AutoMigrate(
		&users.User{},

		&blog.PostCategory{},
		&blog.Serie{},
		&blog.Post{},
		&blog.PostCategoryLink{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates the admin account, or resets its password and role when
// the account already exists.
func SeedAdmin(db *gorm.DB, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	hash := string(hashed)
	email = strings.ToLower(strings.TrimSpace(email))

	var user users.User
	err = db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = users.User{
			Email:        email,
			Password:     &hash,
			AuthProvider: users.ProviderLocal,
			Role:         users.RoleAdmin,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		slog.Info("admin user created", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"password": hash,
		"role":     users.RoleAdmin,
	}).Error; err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	slog.Info("admin user refreshed", "email", email)
	return nil
}
