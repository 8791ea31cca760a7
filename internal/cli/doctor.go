package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saify-technologies/generate-agent/internal/config"
	"github.com/saify-technologies/generate-agent/internal/runtime"
	"github.com/saify-technologies/generate-agent/internal/spaces"
)

var doctorCheckHub bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorCheckHub, "check-hub", false, "Also probe the Hugging Face Hub API over the network")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the generation environment",
	Long:  `Check that credentials, configuration, and the local Python toolchain are ready for agent generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false

		token := config.HFToken("")
		if token == "" {
			failed = true
			fmt.Println("[FAIL] HF_TOKEN is not set; generation cannot call the inference router")
		} else {
			fmt.Println("[OK]   HF_TOKEN is set")
		}

		if config.Get(config.KeyBraveAPIKey) == "" {
			fmt.Println("[WARN] brave_api_key is not configured; the web search tool will be unavailable")
		} else {
			fmt.Println("[OK]   brave_api_key is configured")
		}

		pip := &runtime.Pip{}
		if python, err := pip.Python(); err != nil {
			fmt.Println("[WARN] no python interpreter found; install_dependencies will not work")
		} else if err := pip.Available(cmd.Context()); err != nil {
			fmt.Printf("[WARN] %s has no working pip: %v\n", python, err)
		} else {
			fmt.Printf("[OK]   pip available via %s\n", python)
		}

		if err := config.EnsureDir(); err != nil {
			failed = true
			fmt.Printf("[FAIL] config directory: %v\n", err)
		} else {
			fmt.Printf("[OK]   config directory %s is writable\n", config.Dir())
		}

		if doctorCheckHub {
			client := spaces.NewClient("", token)
			if _, err := client.Search(cmd.Context(), "gradio", 1); err != nil {
				failed = true
				fmt.Printf("[FAIL] Hub API probe: %v\n", err)
			} else {
				fmt.Println("[OK]   Hub API reachable")
			}
		}

		if failed {
			return fmt.Errorf("environment is not ready for generation")
		}
		return nil
	},
}
