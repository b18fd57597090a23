package db

import (
	"ggreviews/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=ggreviews sslmode=disable"
	}

	var openErr error
	// No FK constraints: deletes never cascade, orphaned rows stay
	// fetchable (reviews of a deleted game, games of a deleted genre).
	DB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if openErr != nil {
		log.Fatal("failed to connect to the database:", openErr)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("failed to migrate:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate runs the schema migration on any gorm connection, so tests can
// reuse it against their own database.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Game{},
		&models.GameLike{},
		&models.Review{},
		&models.Comment{},
		&models.Feedback{},
	)
}
