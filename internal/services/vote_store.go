package services

import (
	"burrow/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// VoteStore is the authoritative record store for votes: a dumb map from
// (voter, target) to a signed value. It decides nothing about transition
// legality; the coordinator does that. Construct it on a transaction so
// its writes share the caller's atomic boundary.
type VoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

// Get returns the live vote for the pair, or nil when none is stored.
func (s *VoteStore) Get(voterID uint, target models.Target) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.
		Where("user_id = ? AND target_kind = ? AND target_id = ?", voterID, target.Kind, target.ID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// GetByID looks a vote up by primary key, for admin retraction.
func (s *VoteStore) GetByID(voteID uint) (*models.Vote, error) {
	var vote models.Vote
	if err := s.db.First(&vote, voteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

// Upsert creates the pair's vote or updates its value in place. A
// duplicate-key failure means another request inserted the pair between
// our read and write; that surfaces as ErrVoteConflict so the caller can
// retry against the now-current state.
func (s *VoteStore) Upsert(voterID uint, target models.Target, value int) error {
	existing, err := s.Get(voterID, target)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.db.Model(existing).Update("value", value).Error
	}

	vote := models.Vote{
		UserID:     voterID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Value:      value,
	}
	if err := s.db.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrVoteConflict
		}
		return err
	}
	return nil
}

// Delete removes the pair's vote if one exists. Deleting an absent vote is
// not an error; the coordinator treats it as a no-op retract.
func (s *VoteStore) Delete(voterID uint, target models.Target) error {
	return s.db.
		Where("user_id = ? AND target_kind = ? AND target_id = ?", voterID, target.Kind, target.ID).
		Delete(&models.Vote{}).Error
}

func (s *VoteStore) DeleteByID(voteID uint) error {
	return s.db.Delete(&models.Vote{}, voteID).Error
}
