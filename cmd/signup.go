package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	signupEmail    string
	signupPassword string
	signupName     string
)

// signupCmd represents the signup command
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an asset library account",
	Long: `Register a new account. On success you are signed in immediately.

Examples:
  alib signup
  alib signup --email me@example.org --name "Ada Lovelace"`,
	Annotations: noSession(),
	RunE:        runSignup,
}

func init() {
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Account email")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password (prompted when omitted)")
	signupCmd.Flags().StringVarP(&signupName, "name", "n", "", "Display name")
}

func runSignup(cmd *cobra.Command, args []string) error {
	creds, err := collectCredentials(signupEmail, signupPassword)
	if err != nil {
		return err
	}

	user, err := session.Signup(getContext(), domain.SignupRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Name:     signupName,
	})
	if err != nil {
		if errs, ok := asValidation(err); ok {
			fmt.Println(ui.FormatError("Invalid signup details"))
			printValidation(errs)
			return errSilent
		}
		return err
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Welcome, %s! You are signed in.", displayUser(user))))
	return nil
}

func displayUser(u *domain.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
