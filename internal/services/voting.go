package services

import (
	"burrow/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult is the authoritative post-transition state returned to the
// caller: the voter's stored value (0 when none) and the target's counters
// as committed, never an optimistic guess.
type VoteResult struct {
	Value     int `json:"value"`
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Score     int `json:"score"`
}

// VoteService is the vote state machine. Cast moves one (voter, target)
// pair between NoVote, Upvoted and Downvoted and keeps the target's
// counters and the author's karma in lockstep with the vote record, all
// inside a single transaction.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// targetState is the snapshot of the target read under lock: who wrote it
// and where its counters stand before the transition.
type targetState struct {
	authorID  uint
	upvotes   int
	downvotes int
	score     int
}

// Cast applies a requested vote value (-1, 0 or +1, with 0 meaning
// retract) for voterID on target. Validation, the prior-vote read and all
// writes happen inside one transaction so there is no check/act window;
// counter and karma moves are column-expression increments so concurrent
// voters on the same target cannot lose updates.
//
// A no-op transition (requested equals the stored value, or a retract with
// nothing stored) succeeds and returns current counters without writing.
func (s *VoteService) Cast(voterID uint, target models.Target, value int) (*VoteResult, error) {
	if value != -1 && value != 0 && value != 1 {
		return nil, ErrInvalidVoteValue
	}
	if !target.Kind.Valid() {
		return nil, ErrInvalidVoteValue
	}

	var result VoteResult
	var notifyAuthorID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		state, err := lockTarget(tx, target)
		if err != nil {
			return err
		}

		if state.authorID == voterID {
			if value == 0 {
				// A self-vote can never exist, so retracting one is a
				// no-op rather than an error.
				result = VoteResult{Upvotes: state.upvotes, Downvotes: state.downvotes, Score: state.score}
				return nil
			}
			return ErrSelfVote
		}

		store := NewVoteStore(tx)
		previous := 0
		if prior, err := store.Get(voterID, target); err != nil {
			return err
		} else if prior != nil {
			previous = prior.Value
		}

		delta := ComputeCounterDelta(previous, value)
		if delta.IsZero() {
			result = VoteResult{Value: value, Upvotes: state.upvotes, Downvotes: state.downvotes, Score: state.score}
			return nil
		}

		if value == 0 {
			if err := store.Delete(voterID, target); err != nil {
				return err
			}
		} else {
			if err := store.Upsert(voterID, target, value); err != nil {
				return err
			}
		}

		if err := applyCounterDelta(tx, target, delta); err != nil {
			return err
		}

		action := ActionVoteReceived
		switch {
		case value == 0:
			action = ActionVoteRetracted
		case previous != 0:
			action = ActionVoteChanged
		}
		if err := applyKarma(tx, state.authorID, target.Kind, KarmaDelta(delta.Score, false), action); err != nil {
			return err
		}

		result = VoteResult{
			Value:     value,
			Upvotes:   state.upvotes + delta.Up,
			Downvotes: state.downvotes + delta.Down,
			Score:     state.score + delta.Score,
		}

		// Genuine transition into Upvoted: notify the author after commit.
		if value == 1 && delta.Up == 1 {
			notifyAuthorID = state.authorID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notifyAuthorID != 0 {
		// Best effort, outside the transactional guarantee.
		go CreateUpvoteNotification(s.db, notifyAuthorID, voterID, target)
	}
	return &result, nil
}

// lockTarget reads the target row FOR UPDATE, serializing transitions on
// the same target for the rest of the transaction. SQLite has no row
// locks; its single writer serializes transactions anyway.
func lockTarget(tx *gorm.DB, target models.Target) (*targetState, error) {
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	switch target.Kind {
	case models.TargetPost:
		var post models.Post
		if err := tx.First(&post, target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &targetState{authorID: post.UserID, upvotes: post.Upvotes, downvotes: post.Downvotes, score: post.Score}, nil
	case models.TargetComment:
		var comment models.Comment
		if err := tx.First(&comment, target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &targetState{authorID: comment.UserID, upvotes: comment.Upvotes, downvotes: comment.Downvotes, score: comment.Score}, nil
	}
	return nil, ErrInvalidVoteValue
}

// applyCounterDelta bumps the target's counter triple with column
// expressions, never read-modify-write in application code.
func applyCounterDelta(tx *gorm.DB, target models.Target, d CounterDelta) error {
	updates := map[string]interface{}{
		"upvotes":   gorm.Expr("upvotes + ?", d.Up),
		"downvotes": gorm.Expr("downvotes + ?", d.Down),
		"score":     gorm.Expr("score + ?", d.Score),
	}

	var query *gorm.DB
	if target.Kind == models.TargetPost {
		query = tx.Model(&models.Post{}).Where("id = ?", target.ID)
	} else {
		query = tx.Model(&models.Comment{}).Where("id = ?", target.ID)
	}
	return query.UpdateColumns(updates).Error
}
