package user

import "context"

// Service defines the queries offered over a loaded user snapshot
type Service interface {
	// LoadUsers replaces the snapshot with a fresh copy from the source
	LoadUsers(ctx context.Context) error

	// GetNumberOfUsers returns the number of loaded users
	GetNumberOfUsers() (int, error)

	// GetUserEmailsList returns every email joined by ";"
	GetUserEmailsList() (string, error)

	// FindUsers returns the users matching all search parameters
	FindUsers(params SearchParams) ([]Record, error)

	// Users returns a copy of the current snapshot
	Users() Snapshot
}
