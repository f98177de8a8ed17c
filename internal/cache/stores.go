package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pensacomp/lms-service/internal/models"
)

// SessionStore mirrors authenticated user state in redis so the auth
// middleware can resolve a token's user without hitting the database,
// and so logout can revoke the session immediately.
type SessionStore struct {
	helper *CacheHelper
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		helper: NewCacheHelper(client, "session:"),
		ttl:    ttl,
	}
}

// Set stores the user mirror under the user's id.
func (s *SessionStore) Set(ctx context.Context, user *models.User) error {
	return s.helper.Set(ctx, strconv.FormatUint(uint64(user.ID), 10), user, s.ttl)
}

// Get returns the mirrored user, or ErrCacheNotFound when the session
// is absent or expired.
func (s *SessionStore) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.helper.Get(ctx, strconv.FormatUint(uint64(userID), 10), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete revokes the session mirror on logout.
func (s *SessionStore) Delete(ctx context.Context, userID uint) error {
	return s.helper.Delete(ctx, strconv.FormatUint(uint64(userID), 10))
}

// CourseStore caches public course projections keyed by course id.
type CourseStore struct {
	helper *CacheHelper
	ttl    time.Duration
}

func NewCourseStore(client *redis.Client, ttl time.Duration) *CourseStore {
	return &CourseStore{
		helper: NewCacheHelper(client, "course:"),
		ttl:    ttl,
	}
}

func (s *CourseStore) Set(ctx context.Context, courseID uint, course *models.Course) error {
	return s.helper.Set(ctx, strconv.FormatUint(uint64(courseID), 10), course, s.ttl)
}

func (s *CourseStore) Get(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := s.helper.Get(ctx, strconv.FormatUint(uint64(courseID), 10), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Delete drops the cached projection after a course mutation.
func (s *CourseStore) Delete(ctx context.Context, courseID uint) error {
	return s.helper.Delete(ctx, strconv.FormatUint(uint64(courseID), 10))
}
