package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/config"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
	"github.com/kamal-hamza/alib-cli/pkg/vault"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage command aliases",
	Long: `Manage user-defined command aliases.

Aliases are shortcuts for frequently used commands. $1, $2... are
replaced by positional arguments and $@ by all of them; without
placeholders, arguments are appended.

Examples:
  alib alias list
  alib alias add drafts "list --status draft"
  alib alias add ok "approve $1"
  alib alias remove drafts`,
	Annotations: noSession(),
}

var aliasListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List all defined aliases",
	Annotations: noSession(),
	RunE:        runAliasList,
}

var aliasAddCmd = &cobra.Command{
	Use:         "add <name> <command>",
	Short:       "Add a new alias",
	Args:        cobra.ExactArgs(2),
	Annotations: noSession(),
	RunE:        runAliasAdd,
}

var aliasRemoveCmd = &cobra.Command{
	Use:         "remove <name>",
	Aliases:     []string{"rm", "delete"},
	Short:       "Remove an alias",
	Args:        cobra.ExactArgs(1),
	Annotations: noSession(),
	RunE:        runAliasRemove,
}

func init() {
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
}

func runAliasList(cmd *cobra.Command, args []string) error {
	if len(appConfig.Aliases) == 0 {
		fmt.Println(ui.FormatInfo("No aliases defined"))
		fmt.Println(ui.FormatMuted("  alib alias add <name> <command>"))
		return nil
	}

	names := make([]string, 0, len(appConfig.Aliases))
	width := 0
	for name := range appConfig.Aliases {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	fmt.Println(ui.StyleTitle.Render("Command Aliases"))
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %s%s  →  %s\n",
			ui.StyleSuccess.Render(name),
			strings.Repeat(" ", width-len(name)),
			ui.FormatMuted(appConfig.Aliases[name]))
	}
	return nil
}

func runAliasAdd(cmd *cobra.Command, args []string) error {
	name, command := args[0], strings.TrimSpace(args[1])

	if err := validateAliasName(name); err != nil {
		return err
	}
	if isReservedCommand(name) {
		return fmt.Errorf("cannot create alias '%s': conflicts with an existing command", name)
	}
	if command == "" {
		return fmt.Errorf("alias command cannot be empty")
	}

	if existing, ok := appConfig.Aliases[name]; ok {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Alias '%s' already exists: %s", name, existing)))
		if !confirm("Overwrite?") {
			return errAborted
		}
	}

	appConfig.Aliases[name] = command
	if err := appConfig.Save(appVault.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Created alias: %s → %s", name, command)))
	return nil
}

func runAliasRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	command, ok := appConfig.Aliases[name]
	if !ok {
		return fmt.Errorf("alias '%s' not found", name)
	}

	delete(appConfig.Aliases, name)
	if err := appConfig.Save(appVault.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Removed alias: %s → %s", name, command)))
	return nil
}

// validateAliasName checks if an alias name is valid
func validateAliasName(name string) error {
	if name == "" {
		return fmt.Errorf("alias name cannot be empty")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("alias name cannot start with '-'")
	}
	for _, ch := range name {
		if !isValidAliasChar(ch) {
			return fmt.Errorf("alias name contains invalid character: %q", ch)
		}
	}
	return nil
}

func isValidAliasChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// isReservedCommand reports whether name is a built-in command or alias
func isReservedCommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// expandAlias substitutes $1..$n and $@ in an alias command
func expandAlias(aliasCmd string, args []string) []string {
	parts := strings.Fields(aliasCmd)
	for i := range parts {
		for j, arg := range args {
			parts[i] = strings.ReplaceAll(parts[i], fmt.Sprintf("$%d", j+1), arg)
		}
		parts[i] = strings.ReplaceAll(parts[i], "$@", strings.Join(args, " "))
	}
	if !strings.Contains(aliasCmd, "$") {
		parts = append(parts, args...)
	}
	return parts
}

// TryResolveAlias expands cmdName when it is a configured alias
func TryResolveAlias(cfg *config.Config, cmdName string, args []string) ([]string, bool) {
	if cfg == nil || cfg.Aliases == nil {
		return nil, false
	}
	aliasCmd, ok := cfg.Aliases[cmdName]
	if !ok {
		return nil, false
	}
	return expandAlias(aliasCmd, args), true
}

// resolveArgs rewrites the command line when its first word is an alias.
// Built-in commands always win over aliases.
func resolveArgs(args []string) []string {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") || isReservedCommand(args[0]) {
		return args
	}
	v, err := vault.New()
	if err != nil {
		return args
	}
	cfg, err := config.Load(v.ConfigPath)
	if err != nil {
		return args
	}
	if expanded, ok := TryResolveAlias(cfg, args[0], args[1:]); ok {
		return expanded
	}
	return args
}
