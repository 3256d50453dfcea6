package users

import (
	"fmt"

	"github.com/crucial707/blog-api/cmd/cli/client"
	"github.com/crucial707/blog-api/cmd/cli/output"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
// InitUsers registers the admin-only user commands.
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin only)",
	}

	usersCmd.AddCommand(
		listUsersCmd(),
		createUserCmd(),
		promoteUserCmd(),
		deleteUserCmd(),
	)

	rootCmd.AddCommand(usersCmd)
}

// ==========================
// List Users
// ==========================
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []models.User
			if err := client.Do("GET", "/users", nil, &users); err != nil {
				return err
			}

			if asJSON {
				return output.PrintJSON(users)
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.PublicID, u.Name, u.Admin})
			}
			output.RenderTable([]string{"Public ID", "Name", "Admin"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// Create User
// ==========================
func createUserCmd() *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Message  string `json:"message"`
				PublicID string `json:"public_id"`
			}
			payload := map[string]string{"name": name, "password": password}
			if err := client.Do("POST", "/user", payload, &out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (public id %s)\n", out.Message, out.PublicID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "user name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

// ==========================
// Promote User
// ==========================
func promoteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [public_id]",
		Short: "Grant admin to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, "PUT", "/user/"+args[0])
		},
	}
}

// ==========================
// Delete User
// ==========================
func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [public_id]",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, "DELETE", "/user/"+args[0])
		},
	}
}

func printMessage(cmd *cobra.Command, method, path string) error {
	var out struct {
		Message string `json:"message"`
	}
	if err := client.Do(method, path, nil, &out); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Message)
	return nil
}
