package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/frans1979valk/vastelijn-portal/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init loads the .env file (if present) and opens the sqlite database.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using environment")
	}

	if err := os.MkdirAll(APKDir(), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(DBPath()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.DownloadLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func AppName() string {
	return getenv("APP_NAME", "VasteLijn Portal")
}

// JWTSecret must be overridden in any real deployment.
func JWTSecret() string {
	return getenv("JWT_SECRET", "CHANGE_ME")
}

// JWTExpireMinutes defaults to 10080 minutes (7 days).
func JWTExpireMinutes() int {
	n, err := strconv.Atoi(getenv("JWT_EXPIRE_MINUTES", "10080"))
	if err != nil || n <= 0 {
		return 10080
	}
	return n
}

func DataDir() string {
	return getenv("DATA_DIR", "/app/data")
}

func DBPath() string {
	return getenv("DB_PATH", filepath.Join(DataDir(), "portal.db"))
}

// APKDir holds the uploaded APK binaries, named by their original filename.
func APKDir() string {
	return filepath.Join(DataDir(), "apk")
}

func ConfigFilePath() string {
	return filepath.Join(DataDir(), "config.json")
}

func HeadwindBaseURL() string {
	return os.Getenv("HEADWIND_BASE_URL")
}

func HeadwindAdminUser() string {
	return os.Getenv("HEADWIND_ADMIN_USER")
}

func HeadwindAdminPass() string {
	return os.Getenv("HEADWIND_ADMIN_PASS")
}

func Port() string {
	return getenv("PORT", "8000")
}
