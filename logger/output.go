package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: compiled source, errors with hints
//	1 (-v)      - + Progress, startup info, watch events, save confirmations
//	2 (-vv)     - + Resolver detail, timing, config loaded, HTTP requests
//	3 (-vvv)    - + SQL queries, websocket frames, chain traversal
//	4 (-vvvv)   - + Full document and generated-source dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Compiled source, command output
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress    // Progress indicators (e.g., "Recompiling after change")
	OutputStartup     // Startup banners, config summary
	OutputWatchEvents // Watch-mode file events and recompile triggers
	OutputStoreOps    // Program library saves/deletes

	// Level 2 (-vv) - Detailed
	OutputCompileDetail // Resolver and hoisting detail per node
	OutputTiming        // Operation timing (e.g., "compile took 4ms")
	OutputConfig        // Config values loaded/applied
	OutputHTTPCalls     // HTTP requests served

	// Level 3 (-vvv) - Debug
	OutputSQLQueries // Individual SQL queries executed
	OutputWSFrames   // Websocket message summaries
	OutputChainWalk  // Chain traversal flow (node entry/exit)

	// Level 4 (-vvvv) - Full dump
	OutputDocumentDump // Full patch document contents
	OutputSourceDump   // Full generated source in logs
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:    VerbosityInfo,
	OutputStartup:     VerbosityInfo,
	OutputWatchEvents: VerbosityInfo,
	OutputStoreOps:    VerbosityInfo,

	OutputCompileDetail: VerbosityDebug,
	OutputTiming:        VerbosityDebug,
	OutputConfig:        VerbosityDebug,
	OutputHTTPCalls:     VerbosityDebug,

	OutputSQLQueries: VerbosityTrace,
	OutputWSFrames:   VerbosityTrace,
	OutputChainWalk:  VerbosityTrace,

	OutputDocumentDump: VerbosityAll,
	OutputSourceDump:   VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:       "results",
	OutputErrors:        "errors",
	OutputUserStatus:    "status",
	OutputProgress:      "progress",
	OutputStartup:       "startup",
	OutputWatchEvents:   "watch-events",
	OutputStoreOps:      "store-ops",
	OutputCompileDetail: "compile-detail",
	OutputTiming:        "timing",
	OutputConfig:        "config",
	OutputHTTPCalls:     "http",
	OutputSQLQueries:    "sql",
	OutputWSFrames:      "ws-frames",
	OutputChainWalk:     "chain-walk",
	OutputDocumentDump:  "document-dump",
	OutputSourceDump:    "source-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and status"
	case VerbosityDebug:
		return "above + compile detail, timing, config values"
	case VerbosityTrace:
		return "above + SQL, websocket frames, chain traversal"
	case VerbosityAll:
		return "full output including document and source dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
