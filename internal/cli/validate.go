package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/saify-technologies/generate-agent/internal/agentconfig"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

// expectedFiles is the layout every generated project must have.
var expectedFiles = []string{
	"run.py",
	"requirements.txt",
	"README.md",
	filepath.Join("src", "agent.py"),
	filepath.Join("src", "__init__.py"),
	filepath.Join("src", "tools", "__init__.py"),
}

var validateCmd = &cobra.Command{
	Use:   "validate <agent-dir>",
	Short: "Validate a generated agent project",
	Long:  `Check a generated project's layout and validate its agent_config.json against the schema.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		failed := false

		for _, rel := range expectedFiles {
			if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
				failed = true
				fmt.Printf("[FAIL] missing %s\n", rel)
			} else {
				fmt.Printf("[OK]   %s\n", rel)
			}
		}

		cfgPath := filepath.Join(dir, agentconfig.FileName)
		result, err := agentconfig.ValidateFile(cfgPath)
		if err != nil {
			return fmt.Errorf("validating %s: %w", cfgPath, err)
		}
		if result.Valid {
			fmt.Printf("[OK]   %s\n", agentconfig.FileName)
		} else {
			failed = true
			fmt.Printf("[FAIL] %s:\n", agentconfig.FileName)
			for _, issue := range result.Issues {
				fmt.Printf("       %s: %s\n", issue.Path, issue.Message)
			}
		}

		if failed {
			return fmt.Errorf("project at %s is not a valid generated agent", dir)
		}
		return nil
	},
}
