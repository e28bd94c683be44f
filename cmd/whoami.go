package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the account the stored token belongs to and when the token expires.
The expiry is read from the token itself and is informational only.`,
	RunE: runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle("Session"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Email", user.Email))
	if user.Name != "" {
		fmt.Println(ui.RenderKeyValue("Name", user.Name))
	}
	fmt.Println(ui.RenderKeyValue("Role", user.Role))
	fmt.Println(ui.RenderKeyValue("User ID", user.ID))
	fmt.Println(ui.RenderKeyValue("API", appConfig.APIBaseURL))

	exp, ok, err := session.TokenExpiry()
	switch {
	case err != nil:
		fmt.Println(ui.RenderKeyValue("Token", ui.FormatMuted("opaque (no readable expiry)")))
	case !ok:
		fmt.Println(ui.RenderKeyValue("Token", "no expiry"))
	default:
		fmt.Println(ui.RenderKeyValue("Token expires", formatExpiry(exp, time.Now())))
	}
	return nil
}

func formatExpiry(exp, now time.Time) string {
	left := exp.Sub(now).Round(time.Minute)
	stamp := exp.Local().Format("2006-01-02 15:04")
	if left <= 0 {
		return stamp + " (expired)"
	}
	return fmt.Sprintf("%s (in %s)", stamp, left)
}
