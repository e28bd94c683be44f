package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/adapters/editor"
	"github.com/kamal-hamza/alib-cli/pkg/config"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your alib installation",
	Long: `Diagnose issues with your alib setup.

Checks for:
  - Local state directory and configuration file
  - Editor availability
  - API reachability and stored session
  - Pending create draft`,
	Annotations: noSession(),
	Run:         runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("alib Doctor"))
	fmt.Println()

	checkStep("State Directory", func() error {
		if !appVault.Exists() {
			return fmt.Errorf("not found at %s", appVault.RootPath)
		}
		files, size, err := appVault.CacheUsage()
		if err != nil {
			return err
		}
		fmt.Print(ui.FormatMuted(fmt.Sprintf("(cache: %d files, %s) ", files, formatBytes(size))))
		return nil
	})

	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appVault.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (defaults in use, run 'alib config' to create it)", appVault.ConfigPath)
		}
		if _, err := config.Load(appVault.ConfigPath); err != nil {
			return err
		}
		return nil
	})

	checkStep("Editor", func() error {
		name := editor.Preferred(appConfig)
		fields := strings.Fields(name)
		if len(fields) == 0 {
			return fmt.Errorf("no editor configured")
		}
		if _, err := exec.LookPath(fields[0]); err != nil {
			return fmt.Errorf("%q not found in PATH", fields[0])
		}
		return nil
	})

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking " + appConfig.APIBaseURL + " ..."))

	checkStep("API Reachable", func() error {
		start := time.Now()
		if _, err := referenceService.Taxonomy(getContext()); err != nil {
			return err
		}
		fmt.Print(ui.FormatMuted(fmt.Sprintf("(%s) ", time.Since(start).Round(time.Millisecond))))
		return nil
	})

	checkStep("Session", func() error {
		if err := session.Init(getContext()); err != nil {
			return err
		}
		user, err := requireUser()
		if err != nil {
			return fmt.Errorf("not signed in")
		}
		exp, ok, err := session.TokenExpiry()
		if err == nil && ok && time.Until(exp) < 24*time.Hour {
			return fmt.Errorf("%s: token expires %s", user.Email, formatExpiry(exp, time.Now()))
		}
		return nil
	})

	checkStep("Create Draft", func() error {
		draft, err := draftService.Load()
		if err != nil {
			return err
		}
		if draft != nil {
			return fmt.Errorf("unfinished draft %q on step %q (resume with 'alib new')",
				draft.BasicInformation.Name, draft.Step.Title())
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
