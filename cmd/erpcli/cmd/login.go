package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the ERP backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		printBanner(application.config.GetAppName())

		email := loginEmail
		if email == "" {
			fmt.Print("Email: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			email = strings.TrimSpace(line)
		}
		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		user, err := application.auth.Login(cmd.Context(), email, password)
		if err != nil {
			state := application.sessions.Current()
			if state.LastError != "" {
				return fmt.Errorf("login failed: %s", state.LastError)
			}
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", user.FullName(), user.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}
