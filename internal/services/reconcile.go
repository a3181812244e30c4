package services

import (
	"burrow/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// KarmaBreakdown is the full karma picture returned after a user
// reconciliation. Awardee/awarder belong to the awards subsystem and are
// passed through from the user row untouched.
type KarmaBreakdown struct {
	Post    int `json:"post"`
	Comment int `json:"comment"`
	Awardee int `json:"awardee"`
	Awarder int `json:"awarder"`
	Total   int `json:"total"`
}

// ReconcileService recomputes derived counters and karma straight from the
// vote table, replacing (never incrementing) the stored projections. Safe
// to re-run: with no intervening votes the result is identical. It is not
// serialized against live voting on the same subject; replace semantics
// make a racing run converge on the next pass.
type ReconcileService struct {
	db *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{db: db}
}

// RecomputeUserKarma replaces both vote-derived karma buckets for userID
// with sums over the live votes on content they authored, and returns the
// resulting breakdown.
func (s *ReconcileService) RecomputeUserKarma(userID uint) (*KarmaBreakdown, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var postKarma int
	err := s.db.Model(&models.Vote{}).
		Select("COALESCE(SUM(votes.value), 0)").
		Joins("JOIN posts ON posts.id = votes.target_id").
		Where("votes.target_kind = ? AND posts.user_id = ?", models.TargetPost, userID).
		Scan(&postKarma).Error
	if err != nil {
		return nil, err
	}

	var commentKarma int
	err = s.db.Model(&models.Vote{}).
		Select("COALESCE(SUM(votes.value), 0)").
		Joins("JOIN comments ON comments.id = votes.target_id").
		Where("votes.target_kind = ? AND comments.user_id = ?", models.TargetComment, userID).
		Scan(&commentKarma).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"post_karma":    postKarma,
				"comment_karma": commentKarma,
			}).Error; err != nil {
			return err
		}

		// One audit row per bucket that actually moved.
		for bucket, change := range map[models.KarmaBucket]int{
			models.KarmaBucketPost:    postKarma - user.PostKarma,
			models.KarmaBucketComment: commentKarma - user.CommentKarma,
		} {
			if change == 0 {
				continue
			}
			entry := models.KarmaLog{
				UserID: userID,
				Delta:  change,
				Bucket: bucket,
				Action: ActionReconciliation,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &KarmaBreakdown{
		Post:    postKarma,
		Comment: commentKarma,
		Awardee: user.AwardeeKarma,
		Awarder: user.AwarderKarma,
		Total:   postKarma + commentKarma + user.AwardeeKarma + user.AwarderKarma,
	}, nil
}

// RecomputeCounters replaces a content item's counter triple with counts
// taken straight from its votes.
func (s *ReconcileService) RecomputeCounters(target models.Target) error {
	if !target.Kind.Valid() {
		return ErrInvalidVoteValue
	}

	exists, err := s.targetExists(target)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	var upvotes, downvotes int64
	if err := s.db.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ? AND value = 1", target.Kind, target.ID).
		Count(&upvotes).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ? AND value = -1", target.Kind, target.ID).
		Count(&downvotes).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"upvotes":   upvotes,
		"downvotes": downvotes,
		"score":     upvotes - downvotes,
	}
	if target.Kind == models.TargetPost {
		return s.db.Model(&models.Post{}).Where("id = ?", target.ID).UpdateColumns(updates).Error
	}
	return s.db.Model(&models.Comment{}).Where("id = ?", target.ID).UpdateColumns(updates).Error
}

func (s *ReconcileService) targetExists(target models.Target) (bool, error) {
	var count int64
	var err error
	if target.Kind == models.TargetPost {
		err = s.db.Model(&models.Post{}).Where("id = ?", target.ID).Count(&count).Error
	} else {
		err = s.db.Model(&models.Comment{}).Where("id = ?", target.ID).Count(&count).Error
	}
	return count > 0, err
}
