package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := application.auth.Bootstrap(cmd.Context())
		if !state.IsAuthenticated {
			fmt.Println("Not signed in.")
			return nil
		}
		user := state.User
		fmt.Printf("%s <%s>\nrole: %s\n", user.FullName(), user.Email, user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
