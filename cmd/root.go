package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/adapters/api"
	"github.com/kamal-hamza/alib-cli/internal/adapters/editor"
	"github.com/kamal-hamza/alib-cli/internal/adapters/query"
	"github.com/kamal-hamza/alib-cli/internal/adapters/repository"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/config"
	"github.com/kamal-hamza/alib-cli/pkg/logger"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
	"github.com/kamal-hamza/alib-cli/pkg/vault"
)

// annotationSession marks commands that do not need the auth session hydrated
const annotationSession = "session"

var (
	// Global vault, config and logger
	appVault  *vault.Vault
	appConfig *config.Config
	appLogger *logger.Logger
	appCtx    context.Context
	appCancel context.CancelFunc

	// Local storage
	fileStorage *repository.FileStorage
	tokenRepo   *repository.TokenRepository
	draftRepo   *repository.DraftRepository

	// Remote API
	apiClient      *api.Client
	assetsAPI      *api.AssetsResource
	authAPI        *api.AuthResource
	contributorAPI *api.ContributorResource
	referenceAPI   *api.ReferenceResource
	suggestionsAPI *api.SuggestionsResource
	queryCache     *query.Cache
	editorLauncher *editor.Launcher

	// Services
	session           *services.Session
	assetService      *services.AssetService
	createService     *services.CreateAssetService
	editService       *services.EditAssetService
	draftService      *services.DraftService
	referenceService  *services.ReferenceService
	suggestionService *services.SuggestionService
	statsService      *services.StatsService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alib",
	Short: "alib - asset library admin client",
	Long: ui.StyleTitle.Render("alib") + " - Asset Library Client\n\n" +
		"Create, edit, review and browse catalog assets from the terminal.\n" +
		"Every change goes straight to the asset library API; only your login\n" +
		"token and the in-progress create draft are kept locally.",
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.SetArgs(resolveArgs(os.Args[1:]))
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errSilent) && !errors.Is(err, errAborted) {
			reportError(err)
		}
		if appCancel != nil {
			appCancel()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(attachURLCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	appCtx, appCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if cmd.Name() == "version" {
		return nil
	}

	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v
	if err := appVault.Initialize(); err != nil {
		return fmt.Errorf("failed to create local state directory: %w", err)
	}

	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatWarning("Invalid config, using defaults: "+err.Error()))
		cfg = config.DefaultConfig()
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	appLogger, err = logger.New(logger.Options{
		Level:  appConfig.LogLevel,
		Format: appConfig.LogFormat,
		Path:   appVault.LogFile(),
	})
	if err != nil {
		appLogger = logger.Nop()
	}
	appLogger = appLogger.With("command", cmd.CommandPath())

	if err := wireApp(); err != nil {
		return err
	}

	if cmd.Annotations[annotationSession] == "none" {
		return nil
	}
	return session.Init(getContext())
}

// wireApp builds adapters and services from the loaded config
func wireApp() error {
	fileStorage = repository.NewFileStorage(appVault)
	tokenRepo = repository.NewTokenRepository(fileStorage)
	draftRepo = repository.NewDraftRepository(fileStorage)

	client, err := api.New(appLogger, api.Config{
		BaseURL:   appConfig.APIBaseURL,
		Timeout:   appConfig.HTTPTimeout(),
		UserAgent: "alib/" + Version,
	}, tokenRepo)
	if err != nil {
		return fmt.Errorf("invalid API configuration: %w", err)
	}
	apiClient = client

	assetsAPI = api.NewAssetsResource(apiClient)
	authAPI = api.NewAuthResource(apiClient)
	contributorAPI = api.NewContributorResource(apiClient)
	referenceAPI = api.NewReferenceResource(apiClient)
	suggestionsAPI = api.NewSuggestionsResource(apiClient)

	queryCache = query.New(appLogger, query.Config{
		TTL:         appConfig.CacheTTL(),
		ReadRetries: appConfig.ReadRetries,
		Retryable:   api.IsRetryable,
	})
	editorLauncher = editor.NewLauncher(appConfig)

	session = services.NewSession(authAPI, tokenRepo, appLogger)
	assetService = services.NewAssetService(assetsAPI, queryCache)
	createService = services.NewCreateAssetService(assetsAPI, contributorAPI, draftRepo, queryCache, appLogger, appConfig.MaxCategories)
	editService = services.NewEditAssetService(assetsAPI, contributorAPI, queryCache, editorLauncher, appLogger, appVault.CachePath, appConfig.MaxCategories)
	draftService = services.NewDraftService(draftRepo)
	referenceService = services.NewReferenceService(referenceAPI, queryCache)
	suggestionService = services.NewSuggestionService(suggestionsAPI, queryCache)
	statsService = services.NewStatsService(assetsAPI, queryCache)

	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if appLogger != nil {
		appLogger.Sync()
	}
	if appCancel != nil {
		appCancel()
	}
	return nil
}

// reportError prints err for the user: API errors verbatim, transport
// errors as a generic message with the cause left in the log
func reportError(err error) {
	if appLogger != nil {
		appLogger.Error("command failed", "error", err)
		appLogger.Sync()
	}
	fmt.Fprintln(os.Stderr, ui.FormatError(api.UserMessage(err)))

	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		fmt.Fprintln(os.Stderr, ui.FormatInfo("Sign in with: alib login"))
	case api.IsUnauthorized(err):
		fmt.Fprintln(os.Stderr, ui.FormatInfo("Your session expired. Sign in again with: alib login"))
	}
}

// getContext returns a context for operations, canceled on Ctrl+C
func getContext() context.Context {
	if appCtx == nil {
		return context.Background()
	}
	return appCtx
}

// noSession marks a command as not needing the auth session
func noSession() map[string]string {
	return map[string]string{annotationSession: "none"}
}
