package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
	"github.com/pratik-mahalle/userdata/internal/pkg/errors"
)

// UserRepository keeps a fixed list of users in memory. It backs the mock
// users server and satisfies user.Source.
type UserRepository struct {
	users []user.Record
}

// NewUserRepository creates a repository holding users. The slice is
// never modified afterwards.
func NewUserRepository(users []user.Record) *UserRepository {
	return &UserRepository{users: users}
}

// LoadFile reads a JSON array of users from path
func LoadFile(path string) (*UserRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []user.Record
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	if users == nil {
		users = []user.Record{}
	}

	return NewUserRepository(users), nil
}

// ListUsers returns every user in file order
func (r *UserRepository) ListUsers(ctx context.Context) ([]user.Record, error) {
	out := make([]user.Record, len(r.users))
	copy(out, r.users)
	return out, nil
}

// GetByID returns the first user whose id matches
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.Record, error) {
	for i := range r.users {
		u := r.users[i]
		if v, ok := u.Field(user.FieldID); ok && user.ValuesEqual(v, id) {
			return &u, nil
		}
	}
	return nil, errors.NotFound("user")
}

// Count returns the number of stored users
func (r *UserRepository) Count() int {
	return len(r.users)
}
