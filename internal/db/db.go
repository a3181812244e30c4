package db

import (
	"log"
	"os"

	"burrow/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=burrow port=5432 sslmode=disable"
	}

	var err error
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the vote store relies on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.KarmaLog{},
		&models.ModerationLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedBoards()
}

func seedBoards() {
	var count int64
	DB.Model(&models.Board{}).Count(&count)
	if count > 0 {
		log.Println("Boards already seeded, skipping")
		return
	}

	boards := []models.Board{
		{Name: "general", Description: "Anything that fits nowhere else"},
		{Name: "tech", Description: "Programming, hardware, infrastructure"},
		{Name: "showcase", Description: "Show off what you built"},
		{Name: "meta", Description: "About Burrow itself"},
	}

	for _, board := range boards {
		if err := DB.Create(&board).Error; err != nil {
			log.Printf("Failed to create board %s: %v", board.Name, err)
		}
	}
	log.Println("Initial boards created successfully")
}
