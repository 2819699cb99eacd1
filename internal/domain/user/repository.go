package user

import "context"

// Source defines where user records are fetched from
type Source interface {
	// ListUsers retrieves the full list of users in source order
	ListUsers(ctx context.Context) ([]Record, error)
}
