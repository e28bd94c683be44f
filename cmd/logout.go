package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Sign out and forget the stored token",
	Annotations: noSession(),
	RunE:        runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := session.Logout(); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Signed out"))
	return nil
}
