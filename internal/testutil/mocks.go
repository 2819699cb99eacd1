package testutil

import (
	"context"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
)

// MockUserSource is a mock implementation of user.Source
type MockUserSource struct {
	Users     []user.Record
	ListError error
	Calls     int
}

func NewMockUserSource(users []user.Record) *MockUserSource {
	return &MockUserSource{Users: users}
}

func (m *MockUserSource) ListUsers(ctx context.Context) ([]user.Record, error) {
	m.Calls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]user.Record, len(m.Users))
	copy(out, m.Users)
	return out, nil
}
