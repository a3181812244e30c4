package services

import (
	"fmt"
	"testing"
	"time"

	"burrow/internal/models"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type recountWorkerSuite struct {
	suite.Suite
	db     *gorm.DB
	worker *RecountWorker
	author *models.User
	voter  *models.User
	post   *models.Post
}

func TestRecountWorkerSuite(t *testing.T) {
	suite.Run(t, new(recountWorkerSuite))
}

func (s *recountWorkerSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.worker = newRecountWorker(NewReconcileService(s.db))
	s.author = createUser(s.T(), s.db, "author")
	s.voter = createUser(s.T(), s.db, "voter")
	s.post = createPost(s.T(), s.db, s.author, "p1")

	_, err := NewVoteService(s.db).Cast(s.voter.ID, models.PostTarget(s.post.ID), 1)
	s.Require().NoError(err)
}

// corruptCounters writes drifted values the recount must replace.
func (s *recountWorkerSuite) corruptCounters() {
	s.Require().NoError(s.db.Model(&models.Post{}).Where("id = ?", s.post.ID).
		UpdateColumns(map[string]interface{}{"upvotes": 50, "downvotes": 3, "score": 9}).Error)
}

func (s *recountWorkerSuite) TestScheduleDeduplicates() {
	target := models.PostTarget(s.post.ID)
	s.worker.Schedule(target)
	s.worker.Schedule(target)
	s.worker.Schedule(target)

	s.Require().Len(s.worker.queue, 1)
}

func (s *recountWorkerSuite) TestProcessBatchRepairsCountersAndClearsPending() {
	s.corruptCounters()
	target := models.PostTarget(s.post.ID)
	s.worker.Schedule(target)
	s.worker.processBatch([]models.Target{<-s.worker.queue})

	post := reloadPost(s.T(), s.db, s.post.ID)
	s.Require().Equal(1, post.Upvotes)
	s.Require().Zero(post.Downvotes)
	s.Require().Equal(1, post.Score)

	// Pending was cleared, so the same target queues again.
	s.worker.Schedule(target)
	s.Require().Len(s.worker.queue, 1)
}

func (s *recountWorkerSuite) TestQueueFullDropsAndUnmarks() {
	for i := 0; i < cap(s.worker.queue); i++ {
		s.worker.Schedule(models.CommentTarget(uint(i + 1)))
	}
	s.Require().Len(s.worker.queue, cap(s.worker.queue))

	overflow := models.PostTarget(s.post.ID)
	s.worker.Schedule(overflow)
	s.Require().Len(s.worker.queue, cap(s.worker.queue))

	// The dropped target must not stay marked, or it could never be
	// scheduled again.
	s.worker.mu.Lock()
	marked := s.worker.pending[overflow]
	s.worker.mu.Unlock()
	s.Require().False(marked)
}

func (s *recountWorkerSuite) TestRunRepairsScheduledTarget() {
	go s.worker.run()

	s.corruptCounters()
	s.worker.Schedule(models.PostTarget(s.post.ID))

	s.Require().Eventually(func() bool {
		var post models.Post
		if err := s.db.First(&post, s.post.ID).Error; err != nil {
			return false
		}
		return post.Upvotes == 1 && post.Downvotes == 0 && post.Score == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func (s *recountWorkerSuite) TestBatchHandlesManyTargets() {
	comments := make([]models.Target, 0, 5)
	for i := 0; i < 5; i++ {
		comment := models.Comment{
			Cid:     fmt.Sprintf("c%d", i),
			PostID:  s.post.ID,
			UserID:  s.author.ID,
			Content: "a comment",
			Score:   42,
		}
		s.Require().NoError(s.db.Create(&comment).Error)
		comments = append(comments, models.CommentTarget(comment.ID))
	}

	s.worker.processBatch(comments)

	for _, target := range comments {
		comment := reloadComment(s.T(), s.db, target.ID)
		s.Require().Zero(comment.Score, "unvoted comment recounts to zero")
	}
}
