package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"userhub/backend/internal/common"
	"userhub/backend/internal/constants"
	"userhub/backend/internal/db/repositories"
	"userhub/backend/internal/logging"
	"userhub/backend/internal/metrics"
	"userhub/backend/internal/models/dtos"
	gormModels "userhub/backend/internal/models/gorm"
)

// ErrInvalidUser is returned when name or email is missing.
var ErrInvalidUser = errors.New("name and email are required")

// UserRepository is the persistence the service needs.
type UserRepository interface {
	List(ctx context.Context) ([]gormModels.User, error)
	GetByID(ctx context.Context, id string) (*gormModels.User, error)
	Create(ctx context.Context, user *gormModels.User) error
	Update(ctx context.Context, id, name, email string) (*gormModels.User, error)
	Delete(ctx context.Context, id string) error
}

type UserService struct {
	repo    UserRepository
	cache   common.CacheInterface
	ttl     time.Duration
	metrics *metrics.MetricsRegistry

	// coalesces concurrent cache misses for the same user
	loads singleflight.Group
}

// NewUserService creates the service. metricsReg may be nil.
func NewUserService(repo UserRepository, cache common.CacheInterface, ttl time.Duration, metricsReg *metrics.MetricsRegistry) *UserService {
	return &UserService{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: metricsReg,
	}
}

func (s *UserService) List(ctx context.Context) ([]dtos.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toResponse(&users[i]))
	}
	return out, nil
}

// Get returns a user, reading through the cache.
func (s *UserService) Get(ctx context.Context, id string) (*dtos.UserResponse, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}
	key := constants.CachePrefixUser.Key(id)

	if raw, found := s.cache.Get(ctx, key); found {
		var cached dtos.UserResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			s.recordCache(true)
			return &cached, nil
		}
		// Unreadable entry, drop it and load from the database
		s.cache.Delete(ctx, key)
	}
	s.recordCache(false)

	// The shared load outlives any single caller; each caller still gives
	// up on its own context.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(key, func() (interface{}, error) {
		user, err := s.repo.GetByID(loadCtx, id)
		if err != nil {
			return nil, err
		}
		resp := toResponse(user)
		s.store(loadCtx, key, &resp)
		return &resp, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		resp := *res.Val.(*dtos.UserResponse)
		return &resp, nil
	}
}

func (s *UserService) Create(ctx context.Context, in dtos.UserInput) (*dtos.UserResponse, error) {
	in = in.Normalize()
	if in.Name == "" || in.Email == "" {
		return nil, ErrInvalidUser
	}

	user := &gormModels.User{Name: in.Name, Email: in.Email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logging.Info("User created", "user_id", user.ID)
	resp := toResponse(user)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, id string, in dtos.UserInput) (*dtos.UserResponse, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	in = in.Normalize()
	if in.Name == "" || in.Email == "" {
		return nil, ErrInvalidUser
	}

	user, err := s.repo.Update(ctx, id, in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, constants.CachePrefixUser.Key(id))

	logging.Info("User updated", "user_id", id)
	resp := toResponse(user)
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, constants.CachePrefixUser.Key(id))

	logging.Info("User deleted", "user_id", id)
	return nil
}

// canonicalID returns the lowercase hyphenated form of a user id. Anything
// that is not a UUID cannot name a user.
func canonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", repositories.ErrUserNotFound
	}
	return u.String(), nil
}

func (s *UserService) store(ctx context.Context, key string, resp *dtos.UserResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logging.Warn("Failed to encode user for cache", "key", key, "error", err.Error())
		return
	}
	s.cache.Set(ctx, key, raw, s.ttl)
}

func (s *UserService) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	pattern := constants.CachePrefixUser.Pattern()
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}

func toResponse(u *gormModels.User) dtos.UserResponse {
	return dtos.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
