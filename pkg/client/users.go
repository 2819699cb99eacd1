package client

import (
	"context"
	"fmt"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
)

// User is a single user record as served by the users endpoint
type User = user.Record

// UserService handles user-related API calls
type UserService struct {
	client *Client
}

// List retrieves every user in the order the server returns them
func (s *UserService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.doRequest(ctx, "GET", s.client.usersPath, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, fmt.Errorf("failed to parse response: expected a JSON array of users, got null")
	}
	return users, nil
}

// ListUsers satisfies user.Source so the service can feed a snapshot loader
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return s.List(ctx)
}

// Get retrieves a single user by ID
func (s *UserService) Get(ctx context.Context, id int64) (*User, error) {
	path := fmt.Sprintf("%s/%d", s.client.usersPath, id)

	var u User
	if err := s.client.doRequest(ctx, "GET", path, nil, &u); err != nil {
		return nil, err
	}

	return &u, nil
}
