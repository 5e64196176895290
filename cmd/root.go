package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/albertborsos/mergeflow/cli"
	"github.com/albertborsos/mergeflow/config"
	"github.com/albertborsos/mergeflow/flow"
	"github.com/albertborsos/mergeflow/git"
	"github.com/albertborsos/mergeflow/logger"
	"github.com/albertborsos/mergeflow/prompt"
)

var (
	debugMode             bool
	quietMode             bool
	checkPrereqs          bool
	workDir               string
	branchPrefix          string
	remoteName            string
	notifyFlag            bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "mergeflow",
	Short: "Interactive octopus-merge workflow for git branches",
	Long: `mergeflow walks you through merging a set of remote branches into a
target branch. It tries a single combined (octopus) merge first and falls
back to merging one branch at a time with guided conflict resolution when
the combined attempt fails. Nothing is ever pushed; that stays your call.`,
	RunE:          runMerge,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVarP(&workDir, "dir", "C", "", "Repository to operate in (default: current directory)")
	rootCmd.Flags().StringVarP(&branchPrefix, "prefix", "p", "", "Only offer source branches starting with this prefix")
	rootCmd.Flags().StringVar(&remoteName, "remote", "", "Remote whose branches are merged (default: origin)")
	rootCmd.Flags().BoolVar(&notifyFlag, "notify", false, "Send a desktop notification when the run completes")
	rootCmd.Flags().BoolVar(&checkPrereqs, "check-prereqs", false, "Check CLI prerequisites and exit")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("mergeflow %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("mergeflow %s\n", version)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if checkPrereqs {
		fmt.Print(cli.FormatCheckResults(cli.CheckAll(cli.DefaultPrerequisites())))
		return nil
	}

	if err := cli.ValidateRequired(cli.DefaultPrerequisites()); err != nil {
		return fmt.Errorf("%v\n\nInstall required tools and try again", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	opts, err := buildOptions(cmd, cfg)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	runID := uuid.NewString()
	log := logger.WithRun(runID)
	log.Info("starting merge run", "workDir", opts.WorkDir, "remote", opts.Remote, "prefix", opts.BranchPrefix)

	w := flow.New(git.NewGitService(), prompt.NewTerminalPrompter(), opts)
	if err := w.Run(cmd.Context()); err != nil {
		if errors.Is(err, flow.ErrCancelled) {
			log.Info("run cancelled by user")
			fmt.Println("Nothing to do.")
			return nil
		}
		log.Error("run failed", "error", err)
		return err
	}

	log.Info("run completed")
	return nil
}

// buildOptions merges the persisted config with per-run flag overrides.
func buildOptions(cmd *cobra.Command, cfg *config.Config) (flow.Options, error) {
	opts := flow.Options{
		WorkDir:              cfg.WorkDir,
		Remote:               cfg.Remote,
		BranchPrefix:         cfg.BranchPrefix,
		PrimaryBranches:      cfg.PrimaryBranches,
		DesktopNotifications: cfg.NotificationsEnabled,
	}

	if cmd.Flags().Changed("dir") {
		opts.WorkDir = workDir
	}
	if cmd.Flags().Changed("prefix") {
		opts.BranchPrefix = branchPrefix
	}
	if cmd.Flags().Changed("remote") {
		opts.Remote = remoteName
	}
	if cmd.Flags().Changed("notify") {
		opts.DesktopNotifications = notifyFlag
	}

	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return flow.Options{}, fmt.Errorf("cannot determine working directory: %w", err)
		}
		opts.WorkDir = wd
	}

	return opts, nil
}
