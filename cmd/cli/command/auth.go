package command

// auth.go handles authentication commands for bookvibectl: login, logout and
// account registration.

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rdxa101ou/bookvibe/cmd/cli/command/client"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Sign in and out of the bookvibe API. Supports login, logout, registration.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to bookvibe",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			var err error
			password, err = readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		httpClient := client.NewHTTPClient(apiURL)
		sessionToken, err := httpClient.Login(email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := saveToken(sessionToken); err != nil {
			return fmt.Errorf("login succeeded but saving the session failed: %w", err)
		}

		fmt.Println("✓ Successfully logged in!")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of bookvibe",
	RunE: func(cmd *cobra.Command, args []string) error {
		if token != "" {
			httpClient := client.NewHTTPClient(apiURL)
			httpClient.SetToken(token)
			if err := httpClient.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
		}

		if err := saveToken(""); err != nil {
			return err
		}
		fmt.Println("✓ Successfully logged out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new bookvibe account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			var err error
			password, err = readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		httpClient := client.NewHTTPClient(apiURL)
		if err := httpClient.Register(email, password); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println("✓ Registration successful! Please login to continue.")
		return nil
	},
}

// readPassword securely reads a password with masking
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // newline after the masked input
	return strings.TrimSpace(string(bytePassword)), nil
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password (prompted if omitted)")
	loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account (prompted if omitted)")
	registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(authCmd)
}
