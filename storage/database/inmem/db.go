// Package inmemdb provides mutex-guarded in-memory repositories.
// They back the handler test suites and local bring-up without Postgres.
package inmemdb

import (
	"sync"

	"github.com/edulab/peerreview/core/assignment"
	"github.com/edulab/peerreview/core/comment"
	"github.com/edulab/peerreview/core/notification"
	"github.com/edulab/peerreview/core/project"
	"github.com/edulab/peerreview/core/review"
	"github.com/edulab/peerreview/core/submission"
	"github.com/edulab/peerreview/core/user"
)

type DB struct {
	mu sync.RWMutex

	users         map[int]user.User
	projects      map[int]project.Project
	submissions   map[int]submission.Submission
	reviews       map[int]review.Review
	comments      map[int]comment.Comment
	assignments   map[int]assignment.Assignment
	notifications map[int]notification.Notification

	seq map[string]int
}

func NewDB() *DB {
	db := &DB{}
	db.reset()
	return db
}

// Reset drops all rows; test helper.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.reset()
}

func (db *DB) reset() {
	db.users = make(map[int]user.User)
	db.projects = make(map[int]project.Project)
	db.submissions = make(map[int]submission.Submission)
	db.reviews = make(map[int]review.Review)
	db.comments = make(map[int]comment.Comment)
	db.assignments = make(map[int]assignment.Assignment)
	db.notifications = make(map[int]notification.Notification)
	db.seq = make(map[string]int)
}

// nextID must be called with db.mu held.
func (db *DB) nextID(table string) int {
	db.seq[table]++
	return db.seq[table]
}
