package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/streamworks/streamctl/streaming"
)

var (
	loginEmail    string
	loginPassword string

	registerUsername string
	registerEmail    string
	registerPassword string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the streaming platform",
	Long: `Authenticate against the streaming platform and persist the session.

The session token is stored on disk and attached to every subsequent
command until you log out.`,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	RunE:  runLogout,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password (prompted when omitted)")
}

// promptPassword reads a password without echoing when stdin is a terminal
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginEmail == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidEmail(loginEmail) {
		return fmt.Errorf("invalid email address: %s", loginEmail)
	}

	if loginPassword == "" {
		var err error
		loginPassword, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}
	if loginPassword == "" {
		return fmt.Errorf("password is required")
	}

	result, err := client.Login(context.Background(), loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %s", streaming.Message(err))
	}

	fmt.Printf("Logged in as %s (%s)\n", loginEmail, result.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if !sess.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := sess.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if registerUsername == "" {
		return fmt.Errorf("username is required")
	}
	if registerEmail == "" || !isValidEmail(registerEmail) {
		return fmt.Errorf("a valid email address is required")
	}

	if registerPassword == "" {
		var err error
		registerPassword, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}
	if !isValidPassword(registerPassword) {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	if err := client.Register(context.Background(), registerUsername, registerEmail, registerPassword); err != nil {
		return fmt.Errorf("registration failed: %s", streaming.Message(err))
	}

	fmt.Printf("Account %s registered. You can now log in.\n", registerUsername)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if !sess.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	role := sess.Role()
	if role == "" {
		role = "user"
	}
	fmt.Printf("Logged in with role %s\n", role)
	return nil
}
