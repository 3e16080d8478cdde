package commands

import (
	"errors"
	"fmt"

	"aisolutions-backend/output"
	"aisolutions-backend/utils"

	"github.com/spf13/cobra"
)

var hashUser string

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for AUTH_USERS",
	Long: `Print a bcrypt hash of the password. With --user the output is a ready
AUTH_USERS entry.

Examples:
  aisolutions hash-password 's3cret'
  aisolutions hash-password 's3cret' --user kwoto`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHashPassword(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
	hashPasswordCmd.Flags().StringVarP(&hashUser, "user", "u", "", "Username to prefix the hash with")
}

func runHashPassword(cmd *cobra.Command, password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if hashUser != "" {
		hash = hashUser + ":" + hash
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	if hashUser != "" {
		output.Muted("Append to AUTH_USERS, comma separated.")
	}
	return nil
}
