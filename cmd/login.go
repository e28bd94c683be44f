package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	loginEmail    string
	loginPassword string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the asset library",
	Long: `Exchange your email and password for an access token.

The token is stored in the local state directory and sent with every
subsequent request. Missing values are prompted for.

Examples:
  alib login
  alib login --email me@example.org`,
	Annotations: noSession(),
	RunE:        runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	creds, err := collectCredentials(loginEmail, loginPassword)
	if err != nil {
		return err
	}

	user, err := session.Login(getContext(), creds)
	if err != nil {
		if errs, ok := asValidation(err); ok {
			fmt.Println(ui.FormatError("Invalid credentials"))
			printValidation(errs)
			return errSilent
		}
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Signed in as %s (%s)", user.Email, user.Role)))
	return nil
}

func collectCredentials(email, password string) (domain.Credentials, error) {
	var err error
	if email == "" {
		if email, err = prompt("Email", "you@example.org", false, notBlank("email")); err != nil {
			return domain.Credentials{}, err
		}
	}
	if password == "" {
		if password, err = prompt("Password", "", true, notBlank("password")); err != nil {
			return domain.Credentials{}, err
		}
	}
	return domain.Credentials{Email: email, Password: password}, nil
}
