package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smarthotel/user-service/internal/domain"
	"github.com/smarthotel/user-service/internal/domain/entity"
	"github.com/smarthotel/user-service/internal/domain/repository"
)

// UserRepository is an in-memory implementation of the user store used in
// tests. It enforces the same uniqueness rules as the Postgres schema so
// flow tests exercise the real conflict paths.
type UserRepository struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*entity.User)}
}

func clone(u *entity.User) *entity.User {
	c := *u
	if u.VerificationToken != nil {
		t := *u.VerificationToken
		c.VerificationToken = &t
	}
	if u.VerificationTokenExpires != nil {
		e := *u.VerificationTokenExpires
		c.VerificationTokenExpires = &e
	}
	return &c
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ex := range r.users {
		if ex.Email == u.Email {
			return domain.NewConflictError("email")
		}
		if ex.Username == u.Username {
			return domain.NewConflictError("username")
		}
		if ex.VerificationToken != nil && u.VerificationToken != nil && *ex.VerificationToken == *u.VerificationToken {
			return domain.NewConflictError("verification_token")
		}
	}

	r.seq++
	u.ID = r.seq
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return clone(u), nil
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return clone(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
