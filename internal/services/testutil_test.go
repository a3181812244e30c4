package services

import (
	"testing"

	"burrow/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single open
// connection keeps the whole test on one SQLite handle, so concurrent
// goroutines serialize at the pool instead of hitting lock errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.KarmaLog{},
		&models.ModerationLog{},
		&models.Notification{},
	))

	return database
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	admin := createUser(t, db, username)
	require.NoError(t, db.Model(admin).Update("role", "admin").Error)
	admin.Role = "admin"
	return admin
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Post {
	t.Helper()
	board := models.Board{Name: "b-" + title}
	require.NoError(t, db.Create(&board).Error)
	post := models.Post{
		Pid:     title,
		UserID:  author.ID,
		BoardID: board.ID,
		Title:   title,
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func createComment(t *testing.T, db *gorm.DB, post *models.Post, author *models.User) *models.Comment {
	t.Helper()
	comment := models.Comment{
		Cid:     "c-" + post.Pid,
		PostID:  post.ID,
		UserID:  author.ID,
		Content: "a comment",
	}
	require.NoError(t, db.Create(&comment).Error)
	return &comment
}

func reloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	return &post
}

func reloadComment(t *testing.T, db *gorm.DB, id uint) *models.Comment {
	t.Helper()
	var comment models.Comment
	require.NoError(t, db.First(&comment, id).Error)
	return &comment
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}
