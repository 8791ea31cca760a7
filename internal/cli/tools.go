package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saify-technologies/generate-agent/internal/config"
	"github.com/saify-technologies/generate-agent/internal/tools"
)

func init() {
	rootCmd.AddCommand(toolsCmd)
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools available to the generator model",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := tools.NewRegistry(tools.Options{
			ModelID:  config.Get(config.KeyModelID),
			MaxSteps: config.GetInt(config.KeyMaxSteps),
		})
		for _, t := range registry.All() {
			fmt.Printf("%-26s %s\n", t.Name(), t.Description())
		}
		return nil
	},
}
