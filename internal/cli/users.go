package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/userdata/internal/domain/user"
	"github.com/pratik-mahalle/userdata/internal/pkg/errors"
	"github.com/pratik-mahalle/userdata/internal/pkg/validator"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Load users and query them",
	}

	cmd.AddCommand(newUsersCountCmd())
	cmd.AddCommand(newUsersEmailsCmd())
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersFindCmd())
	cmd.AddCommand(newUsersGetCmd())

	return cmd
}

func newUsersCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadUsers(cmd); err != nil {
				return err
			}

			n, err := accessor.GetNumberOfUsers()
			if err != nil {
				return err
			}

			if format := getOutputFormat(); format != FormatTable {
				return printOutput(cmd.OutOrStdout(), format, map[string]int{"count": n})
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newUsersEmailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emails",
		Short: "Print every user e-mail separated by ';'",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadUsers(cmd); err != nil {
				return err
			}

			emails, err := accessor.GetUserEmailsList()
			if err != nil {
				return err
			}

			if format := getOutputFormat(); format != FormatTable {
				return printOutput(cmd.OutOrStdout(), format, map[string]string{"emails": emails})
			}
			fmt.Fprintln(cmd.OutOrStdout(), emails)
			return nil
		},
	}
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadUsers(cmd); err != nil {
				return err
			}

			// the count check reports an empty endpoint the same way as every other query
			if _, err := accessor.GetNumberOfUsers(); err != nil {
				return err
			}

			return printUsers(cmd, accessor.Users())
		},
	}
}

func newUsersFindCmd() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "find --param key=value [--param key=value ...]",
		Short: "Find users matching all given fields",
		Long: `Find users whose fields equal every given key=value pair.

Values are read as JSON literals when they parse as one (1, true, null,
{"city":"Gwenborough"}) and as plain strings otherwise.`,
		Example: `  userdata users find --param username=Bret
  userdata users find -p id=1 -p email=Sincere@april.biz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, err := parseSearchParams(params)
			if err != nil {
				return err
			}

			if err := loadUsers(cmd); err != nil {
				return err
			}

			found, err := accessor.FindUsers(search)
			if err != nil {
				return err
			}
			return printUsers(cmd, found)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "search parameter as key=value (repeatable)")

	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a single user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID %q", args[0])
			}

			u, err := apiClient.Users().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printUsers(cmd, []user.Record{*u})
		},
	}
}

func loadUsers(cmd *cobra.Command) error {
	if err := accessor.LoadUsers(cmd.Context()); err != nil {
		appLogger.WithError(err).Debug("Loading users failed")
		return err
	}
	appLogger.With("users", len(accessor.Users())).Debug("Users loaded")
	return nil
}

// parseSearchParams turns key=value pairs into search parameters. An empty
// list yields empty parameters, which FindUsers rejects.
func parseSearchParams(pairs []string) (user.SearchParams, error) {
	params := user.SearchParams{}
	val := validator.New()

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.ValidationError(
				fmt.Sprintf("invalid search parameter %q: expected key=value", pair),
				map[string]string{"param": pair, "reason": "missing '='"},
			)
		}
		key = strings.TrimSpace(key)
		if err := val.ValidateVar(key, "required,printascii"); err != nil {
			return nil, errors.ValidationError(
				fmt.Sprintf("invalid search parameter %q: key must be non-empty printable ASCII", pair),
				map[string]string{"param": pair, "reason": err.Error()},
			)
		}
		params[key] = parseValue(raw)
	}

	return params, nil
}

// parseValue reads raw as a JSON literal, falling back to the plain string.
// Integer literals stay int64 so large IDs compare exactly.
func parseValue(raw string) interface{} {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}

func printUsers(cmd *cobra.Command, users []user.Record) error {
	format := getOutputFormat()
	if format != FormatTable {
		return printOutput(cmd.OutOrStdout(), format, users)
	}

	table := NewTable(cmd.OutOrStdout(), "ID", "USERNAME", "EMAIL", "OTHER FIELDS")
	for _, u := range users {
		table.AddRow(
			u.Text(user.FieldID),
			u.Text(user.FieldUsername),
			u.Text(user.FieldEmail),
			truncate(strings.Join(extraKeys(u), ","), 40),
		)
	}
	return table.Render()
}

func extraKeys(u user.Record) []string {
	keys := make([]string, 0, len(u.Extra))
	for k := range u.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
