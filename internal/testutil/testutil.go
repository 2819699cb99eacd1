package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
)

// UsersJSON is a trimmed copy of the users fixture served by the mock server
const UsersJSON = `[
  {
    "id": 1,
    "name": "Leanne Graham",
    "username": "Bret",
    "email": "Sincere@april.biz",
    "address": {"street": "Kulas Light", "city": "Gwenborough", "zipcode": "92998-3874"},
    "phone": "1-770-736-8031 x56442",
    "website": "hildegard.org"
  },
  {
    "id": 2,
    "name": "Ervin Howell",
    "username": "Antonette",
    "email": "Shanna@melissa.tv",
    "address": {"street": "Victor Plains", "city": "Wisokyburgh", "zipcode": "90566-7771"},
    "phone": "010-692-6593 x09125",
    "website": "anastasia.net"
  },
  {
    "id": 3,
    "name": "Clementine Bauch",
    "username": "Samantha",
    "email": "Nathan@yesenia.net",
    "address": {"street": "Douglas Extension", "city": "McKenziehaven", "zipcode": "59590-4157"},
    "phone": "1-463-123-4447",
    "website": "ramiro.info"
  }
]`

// Users decodes UsersJSON
func Users(t testing.TB) []user.Record {
	t.Helper()
	var users []user.Record
	if err := json.Unmarshal([]byte(UsersJSON), &users); err != nil {
		t.Fatalf("Failed to decode users fixture: %v", err)
	}
	return users
}

// NewUsersServer starts a server answering GET /users with status and body
func NewUsersServer(t testing.TB, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// UnreachableURL returns the address of a server that has already shut down
func UnreachableURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
