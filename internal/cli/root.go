package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saify-technologies/generate-agent/internal/branding"
	"github.com/saify-technologies/generate-agent/internal/config"
	"github.com/saify-technologies/generate-agent/internal/logger"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagRequirements string
	flagOutputDir    string
	flagModelID      string
	flagHFToken      string
	flagMaxSteps     int
	flagDryRun       bool
)

func init() {
	rootCmd.Flags().StringVarP(&flagRequirements, "requirements", "r", "", "Agent requirements: literal text or a path to a text file")
	rootCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "generated_agents", "Directory to write the generated agent into")
	rootCmd.Flags().StringVar(&flagModelID, "model-id", "", "Model id for generation and the generated agent (default from config)")
	rootCmd.Flags().StringVar(&flagHFToken, "hf-token", "", "Hugging Face token (default from HF_TOKEN)")
	rootCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Maximum generation loop steps (default from config)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Write the deterministic skeleton without calling the model")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " -r <requirements> -o <output-dir>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns a natural-language requirement into a runnable
smolagents CodeAgent project: agent source, tool stubs, configuration,
Python requirements, and docs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real env always wins.
		_ = godotenv.Load()
		logger.Init()
		config.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRequirements == "" {
			return cmd.Help()
		}
		return runGenerate(cmd.Context(), generateParams{
			requirements: flagRequirements,
			outputDir:    flagOutputDir,
			modelID:      flagModelID,
			hfToken:      flagHFToken,
			maxSteps:     flagMaxSteps,
			dryRun:       flagDryRun,
		})
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
