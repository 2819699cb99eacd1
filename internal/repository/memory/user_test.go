package memory

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/userdata/internal/pkg/errors"
	"github.com/pratik-mahalle/userdata/internal/testutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	repo, err := LoadFile(writeFile(t, testutil.UsersJSON))
	require.NoError(t, err)

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.Users(t), users)
	assert.Equal(t, 3, repo.Count())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read users file")

	_, err = LoadFile(writeFile(t, `{"not": "an array"}`))
	assert.ErrorContains(t, err, "failed to parse users file")
}

func TestUserRepository_GetByID(t *testing.T) {
	repo := NewUserRepository(testutil.Users(t))
	ctx := context.Background()

	u, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Antonette", u.Username)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, stderrors.Is(err, &errors.AppError{Code: errors.ErrCodeNotFound}))
}

func TestUserRepository_ListReturnsCopy(t *testing.T) {
	repo := NewUserRepository(testutil.Users(t))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	users[0].Username = "changed"

	again, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bret", again[0].Username)
}

func TestLoadFile_ShippedFixture(t *testing.T) {
	repo, err := LoadFile(filepath.Join("..", "..", "..", "data", "users.json"))
	require.NoError(t, err)
	assert.Equal(t, 10, repo.Count())

	u, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Moriah.Stanton", u.Username)
	assert.Equal(t, "Rey.Padberg@karina.biz", u.Email)
}

func TestUserRepository_GetByIDUntypedID(t *testing.T) {
	repo, err := LoadFile(writeFile(t, `[{"id": "u-1", "username": "Bret"}, {"id": 2, "username": "Antonette"}]`))
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), 0)
	assert.True(t, stderrors.Is(err, &errors.AppError{Code: errors.ErrCodeNotFound}))

	u, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Antonette", u.Username)
}
