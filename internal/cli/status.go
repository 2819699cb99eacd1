package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the users endpoint is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := map[string]interface{}{
				"url": appConfig.Source.UsersURL(),
			}

			loadErr := accessor.LoadUsers(cmd.Context())
			if loadErr != nil {
				summary["reachable"] = false
				summary["error"] = loadErr.Error()
			} else {
				n, _ := accessor.GetNumberOfUsers()
				summary["reachable"] = true
				summary["users"] = n
			}

			if format := getOutputFormat(); format != FormatTable {
				if err := printOutput(cmd.OutOrStdout(), format, summary); err != nil {
					return err
				}
				return loadErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Users endpoint")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintf(out, "  URL:       %s\n", summary["url"])
			if loadErr != nil {
				fmt.Fprintf(out, "  Status:    unreachable (%v)\n", loadErr)
				return loadErr
			}
			fmt.Fprintln(out, "  Status:    reachable")
			fmt.Fprintf(out, "  Users:     %d\n", summary["users"])
			return nil
		},
	}
}
