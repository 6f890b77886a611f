package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tactus/baton/cmd/baton/commands"
	"github.com/tactus/baton/logger"
)

var rootCmd = &cobra.Command{
	Use:   "baton",
	Short: "Baton - Compile Tactus patches into Ensemble scripts",
	Long: `Baton - The compiler behind the Tactus block editor.

Baton turns patch documents (the JSON files the editor saves) into
Ensemble scripts that performance devices execute.

Available commands:
  compile  - Compile a patch file to Ensemble source
  kinds    - List the block kinds the compiler understands
  programs - Manage the saved program library
  serve    - Start the compile server for live editor sessions
  config   - Manage Baton configuration
  version  - Show version information

Examples:
  baton compile song.patch.json          # Compile to stdout
  baton compile song.patch.json --watch  # Recompile on every save
  baton kinds --json                     # Kind catalog for tooling
  baton serve                            # Editor compile server
  baton programs list                    # Saved program library`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON where supported")

	rootCmd.AddCommand(commands.CompileCmd)
	rootCmd.AddCommand(commands.KindsCmd)
	rootCmd.AddCommand(commands.ProgramsCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
