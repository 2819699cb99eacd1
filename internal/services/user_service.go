package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
	"github.com/pratik-mahalle/userdata/internal/pkg/errors"
	"github.com/pratik-mahalle/userdata/internal/pkg/metrics"
)

// Query names used for metrics
const (
	QueryNumberOfUsers = "number_of_users"
	QueryEmailsList    = "user_emails_list"
	QueryFindUsers     = "find_users"
)

// Matcher decides whether a record satisfies a set of search parameters
type Matcher func(r user.Record, params user.SearchParams) bool

// UserDataAccessor implements user.Service over an in-memory snapshot.
//
// An empty snapshot is the "not loaded" state; there is no separate flag, so
// a load that returns zero users is indistinguishable from no load at all.
// Concurrent LoadUsers calls are not coordinated: whichever finishes last
// provides the snapshot.
type UserDataAccessor struct {
	source  user.Source
	metrics *metrics.Metrics

	// Matcher is consulted by FindUsers for every record
	Matcher Matcher

	mu    sync.RWMutex
	users user.Snapshot
}

// Option configures a UserDataAccessor
type Option func(*UserDataAccessor)

// WithMetrics records load and query outcomes on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *UserDataAccessor) {
		a.metrics = m
	}
}

// NewUserDataAccessor creates an accessor with an empty snapshot
func NewUserDataAccessor(source user.Source, opts ...Option) *UserDataAccessor {
	a := &UserDataAccessor{
		source:  source,
		Matcher: user.IsMatchingAllSearchParams,
		users:   user.Snapshot{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadUsers fetches the users once and replaces the snapshot wholesale.
// On failure the previous snapshot is kept.
func (a *UserDataAccessor) LoadUsers(ctx context.Context) error {
	start := time.Now()

	users, err := a.source.ListUsers(ctx)
	if err != nil {
		a.recordLoad(metrics.ResultError, start)
		return errors.LoadError(err)
	}

	a.mu.Lock()
	a.users = users
	a.mu.Unlock()

	a.recordLoad(metrics.ResultSuccess, start)
	if a.metrics != nil {
		a.metrics.SetSnapshotUsers(len(users))
	}
	return nil
}

// GetNumberOfUsers returns the number of users in the snapshot
func (a *UserDataAccessor) GetNumberOfUsers() (int, error) {
	users := a.snapshot()
	if len(users) == 0 {
		a.recordQuery(QueryNumberOfUsers, metrics.ResultError)
		return 0, errors.EmptyData()
	}

	a.recordQuery(QueryNumberOfUsers, metrics.ResultSuccess)
	return len(users), nil
}

// GetUserEmailsList returns every email in snapshot order joined by ";".
// A record without an email, or with a null one, contributes an empty segment.
func (a *UserDataAccessor) GetUserEmailsList() (string, error) {
	users := a.snapshot()
	if len(users) == 0 {
		a.recordQuery(QueryEmailsList, metrics.ResultError)
		return "", errors.EmptyData()
	}

	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Text(user.FieldEmail)
	}

	a.recordQuery(QueryEmailsList, metrics.ResultSuccess)
	return strings.Join(emails, ";"), nil
}

// IsMatchingAllSearchParams reports whether r holds every search parameter
func (a *UserDataAccessor) IsMatchingAllSearchParams(r user.Record, params user.SearchParams) bool {
	return user.IsMatchingAllSearchParams(r, params)
}

// FindUsers returns the users matching all params, in snapshot order.
// Arguments are checked before the snapshot, the snapshot before filtering.
func (a *UserDataAccessor) FindUsers(params user.SearchParams) ([]user.Record, error) {
	if len(params) == 0 {
		a.recordQuery(QueryFindUsers, metrics.ResultError)
		return nil, errors.NoSearchParams()
	}

	users := a.snapshot()
	if len(users) == 0 {
		a.recordQuery(QueryFindUsers, metrics.ResultError)
		return nil, errors.EmptyData()
	}

	match := a.Matcher
	if match == nil {
		match = user.IsMatchingAllSearchParams
	}

	var found []user.Record
	for _, u := range users {
		if match(u, params) {
			found = append(found, u)
		}
	}

	if len(found) == 0 {
		a.recordQuery(QueryFindUsers, metrics.ResultError)
		return nil, errors.NoMatch()
	}

	a.recordQuery(QueryFindUsers, metrics.ResultSuccess)
	return found, nil
}

// Users returns a copy of the current snapshot
func (a *UserDataAccessor) Users() user.Snapshot {
	users := a.snapshot()
	out := make(user.Snapshot, len(users))
	copy(out, users)
	return out
}

func (a *UserDataAccessor) snapshot() user.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.users
}

func (a *UserDataAccessor) recordLoad(result string, start time.Time) {
	if a.metrics != nil {
		a.metrics.RecordLoad(result, time.Since(start))
	}
}

func (a *UserDataAccessor) recordQuery(query, result string) {
	if a.metrics != nil {
		a.metrics.RecordQuery(query, result)
	}
}

var _ user.Service = (*UserDataAccessor)(nil)
