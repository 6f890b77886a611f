package commands

import (
	"fmt"

	"github.com/tactus/baton/internal/version"
	"github.com/tactus/baton/logger"
)

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(verbosity, port int, dbPath string) {
	// ANSI escape codes
	cyan := "\033[36m"
	green := "\033[32m"
	yellow := "\033[33m"
	bold := "\033[1m"
	reset := "\033[0m"

	versionInfo := version.Get()

	fmt.Printf("\n%s%s", cyan, bold)
	fmt.Printf("   ╔═══════════════════════════════════╗\n")
	fmt.Printf("   ║   𝄞  B A T O N                    ║\n")
	fmt.Printf("   ║   patches in, Ensemble out        ║\n")
	fmt.Printf("   ╚═══════════════════════════════════╝%s\n\n", reset)

	fmt.Printf("%s%s┌─ Baton Info ────────────────────────────────────────┐%s\n", green, bold, reset)
	fmt.Printf("%s│%s Version:   %s (commit %s)\n", green, reset, versionInfo.Version, versionInfo.Short())
	fmt.Printf("%s│%s Built:     %s\n", green, reset, versionInfo.BuildTime)
	fmt.Printf("%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Printf("%s│%s Port:      %d\n", green, reset, port)
	if dbPath != "" {
		fmt.Printf("%s│%s Library:   %s\n", green, reset, dbPath)
	} else {
		fmt.Printf("%s│%s Library:   disabled (compile only)\n", green, reset)
	}
	fmt.Printf("%s└─────────────────────────────────────────────────────┘%s\n", green, reset)

	fmt.Printf("\n%s%s♬ Editor sessions connect at ws://localhost:%d/ws%s\n", yellow, bold, port, reset)
	fmt.Printf("💡 Press Ctrl+C to stop\n\n")
}
