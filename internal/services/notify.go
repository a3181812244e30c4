package services

import (
	"fmt"
	"log"

	"burrow/internal/models"

	"gorm.io/gorm"
)

// CreateUpvoteNotification writes a "your content was upvoted" row for the
// author. Fire-and-forget: the vote has already committed by the time this
// runs, so a failure here is logged and swallowed, never propagated.
func CreateUpvoteNotification(db *gorm.DB, authorID, voterID uint, target models.Target) {
	body := fmt.Sprintf("Your %s received an upvote", target.Kind)
	notification := models.Notification{
		UserID:  authorID,
		ActorID: &voterID,
		Type:    models.NotificationTypeUpvote,
		Body:    body,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create upvote notification for user %d: %v", authorID, err)
	}
}

// CreateCommentNotification tells a post author (or parent commenter)
// about a new reply. Same best-effort contract as above.
func CreateCommentNotification(db *gorm.DB, receiverID, actorID uint, kind models.NotificationType, body string) {
	if receiverID == actorID {
		return
	}
	notification := models.Notification{
		UserID:  receiverID,
		ActorID: &actorID,
		Type:    kind,
		Body:    body,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create %s notification for user %d: %v", kind, receiverID, err)
	}
}
