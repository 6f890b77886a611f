package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tactus/baton/config"
	"github.com/tactus/baton/display"
	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/logger"
	"github.com/tactus/baton/store"
)

// ProgramsCmd manages the saved program library
var ProgramsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Manage the saved program library",
	Long: `Manage the program library: compiled patches saved by --save or by
editor sessions.

Programs are keyed by the fingerprint of the patch document that
produced them, so re-saving an unchanged patch is a no-op and any
edit gets a fresh entry.

Examples:
  baton programs list              # All saved programs
  baton programs show 4Qz...       # One program's Ensemble source
  baton programs show 4Qz... --doc # The patch document instead
  baton programs rm 4Qz...         # Delete one program`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var programsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgramsList(cmd)
	},
}

var programsShowCmd = &cobra.Command{
	Use:   "show <program-id>",
	Short: "Show a saved program's source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showDoc, _ := cmd.Flags().GetBool("doc")
		return runProgramsShow(cmd, args[0], showDoc)
	},
}

var programsRmCmd = &cobra.Command{
	Use:   "rm <program-id>",
	Short: "Delete a saved program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgramsRm(cmd, args[0])
	},
}

func init() {
	programsShowCmd.Flags().Bool("doc", false, "Show the patch document instead of the Ensemble source")
	programsListCmd.Flags().BoolP("json", "j", false, "Output the program list as JSON")

	ProgramsCmd.AddCommand(programsListCmd)
	ProgramsCmd.AddCommand(programsShowCmd)
	ProgramsCmd.AddCommand(programsRmCmd)
}

// openLibrary opens the program library at the configured path
func openLibrary() (*store.Store, error) {
	dbPath, err := config.GetDatabasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	library, err := store.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open program library: %w", err)
	}
	return library, nil
}

func runProgramsList(cmd *cobra.Command) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	programs, err := library.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list programs: %w", err)
	}

	if display.ShouldOutputJSON(cmd) {
		// Source and document stay out of the listing; use show for one program
		type listing struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			CreatedAt string `json:"created_at"`
			UpdatedAt string `json:"updated_at"`
		}
		out := make([]listing, 0, len(programs))
		for _, p := range programs {
			out = append(out, listing{
				ID:        p.ID,
				Name:      p.Name,
				CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
				UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return display.OutputJSON(out)
	}

	if len(programs) == 0 {
		fmt.Printf("No saved programs\n")
		return nil
	}

	// Print table header
	fmt.Printf("%-20s %-30s %s\n", "PROGRAM ID", "NAME", "UPDATED")
	fmt.Printf("%-20s %-30s %s\n", "----------", "----", "-------")

	for _, p := range programs {
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%-20s %-30s %s\n",
			truncate(p.ID, 20),
			truncate(name, 30),
			p.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Printf("\nTotal: %d program(s)\n", len(programs))
	return nil
}

func runProgramsShow(cmd *cobra.Command, id string, showDoc bool) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	program, err := library.Get(cmd.Context(), id)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return fmt.Errorf("program %s not found", id)
		}
		return fmt.Errorf("failed to load program: %w", err)
	}

	if showDoc {
		if len(program.Document) == 0 {
			return fmt.Errorf("program %s was saved without its patch document", id)
		}
		_, err := os.Stdout.Write(program.Document)
		return err
	}

	fmt.Print(program.Source)
	return nil
}

func runProgramsRm(cmd *cobra.Command, id string) error {
	library, err := openLibrary()
	if err != nil {
		return err
	}
	defer library.Close()

	if err := library.Delete(cmd.Context(), id); err != nil {
		if errors.IsNotFoundError(err) {
			return fmt.Errorf("program %s not found", id)
		}
		return fmt.Errorf("failed to delete program: %w", err)
	}

	pterm.Success.Printfln("Deleted program %s", id)
	return nil
}
