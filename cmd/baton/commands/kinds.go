package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tactus/baton/display"
	"github.com/tactus/baton/patch"
)

// KindsCmd lists the block kinds the compiler understands
var KindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the block kinds the compiler understands",
	Long: `List the node kind catalog: every block the editor can place and
the compiler can render.

Each kind is either a statement (snaps into a chain) or a value
(wires into an input slot). Value kinds carry a precedence tier that
controls parenthesization in generated expressions.

Examples:
  baton kinds                      # Catalog as a table
  baton kinds --category sound     # One palette category
  baton kinds --json               # Full specs for tooling`,
	RunE: runKinds,
}

var kindsCategory string

func init() {
	KindsCmd.Flags().StringVar(&kindsCategory, "category", "", "Only show kinds in this palette category")
	KindsCmd.Flags().BoolP("json", "j", false, "Output full kind specs as JSON")
}

func runKinds(cmd *cobra.Command, args []string) error {
	reg, err := patch.Default()
	if err != nil {
		return fmt.Errorf("failed to load kind catalog: %w", err)
	}

	specs := reg.Specs()
	if kindsCategory != "" {
		filtered := specs[:0]
		for _, spec := range specs {
			if spec.Category == kindsCategory {
				filtered = append(filtered, spec)
			}
		}
		specs = filtered
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{
			"kinds": specs,
			"count": len(specs),
		})
	}

	if len(specs) == 0 {
		fmt.Printf("No kinds found\n")
		return nil
	}

	// Print table header
	fmt.Printf("%-20s %-22s %-12s %-10s %s\n", "KIND", "LABEL", "CATEGORY", "ROLE", "TIER")
	fmt.Printf("%-20s %-22s %-12s %-10s %s\n", "----", "-----", "--------", "----", "----")

	for _, spec := range specs {
		fmt.Printf("%-20s %-22s %-12s %-10s %s\n",
			truncate(spec.Kind, 20),
			truncate(spec.Label, 22),
			truncate(spec.Category, 12),
			kindRole(spec),
			kindTier(spec))
	}

	fmt.Printf("\nTotal: %d kind(s)\n", len(specs))
	return nil
}

func kindRole(spec patch.Spec) string {
	switch {
	case spec.Hoist:
		return "hoisted"
	case spec.Stackable:
		return "statement"
	case spec.Value:
		return "value"
	default:
		return "-"
	}
}

func kindTier(spec patch.Spec) string {
	if !spec.Value {
		return "-"
	}
	return spec.Tier.String()
}

// truncate shortens a string for table display
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
