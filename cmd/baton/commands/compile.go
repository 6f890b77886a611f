package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tactus/baton/config"
	"github.com/tactus/baton/display"
	"github.com/tactus/baton/ensemble"
	"github.com/tactus/baton/internal/version"
	"github.com/tactus/baton/logger"
	"github.com/tactus/baton/patchio"
	"github.com/tactus/baton/store"
)

// CompileCmd compiles a patch document to Ensemble source
var CompileCmd = &cobra.Command{
	Use:   "compile <patch-file>",
	Short: "Compile a patch file to Ensemble source",
	Long: `Compile a Tactus patch document into an Ensemble script.

The patch file is the JSON document the editor saves. By default the
generated source goes to stdout; structural problems that degraded to
empty text are reported on stderr.

Examples:
  baton compile song.patch.json                 # Source to stdout
  baton compile song.patch.json -o song.ens     # Source to a file
  baton compile song.patch.json --save          # Also save to the library
  baton compile song.patch.json --watch         # Recompile on every save
  baton compile song.patch.json --watch --exec 'ensemble-run song.ens'`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

var (
	compileOutput string
	compileSave   bool
	compileWatch  bool
	compileExec   string
)

func init() {
	CompileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Write Ensemble source to a file instead of stdout")
	CompileCmd.Flags().BoolVar(&compileSave, "save", false, "Save the compiled program to the library")
	CompileCmd.Flags().BoolVar(&compileWatch, "watch", false, "Stay running and recompile the patch on every save")
	CompileCmd.Flags().StringVar(&compileExec, "exec", "", "Shell command to run after each successful watch compile")
	CompileCmd.Flags().BoolP("json", "j", false, "Output the full compile result as JSON")
}

// compileResult is the JSON form of one CLI compilation.
type compileResult struct {
	ID          string                `json:"id"`
	Name        string                `json:"name,omitempty"`
	Source      string                `json:"source"`
	Macros      []ensemble.Macro      `json:"macros,omitempty"`
	Diagnostics []ensemble.Diagnostic `json:"diagnostics,omitempty"`
	Stats       ensemble.Stats        `json:"stats"`
	Saved       bool                  `json:"saved,omitempty"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	compiler := ensemble.NewCompiler(nil, ensemble.Options{Indent: cfg.GetIndent()})

	// Open the library only when the result will be saved
	var library *store.Store
	if compileSave {
		dbPath, err := config.GetDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		library, err = store.Open(dbPath, logger.Logger)
		if err != nil {
			return fmt.Errorf("failed to open program library: %w", err)
		}
		defer library.Close()
	}

	if compileWatch {
		return watchPatch(cmd, path, compiler, library, cfg)
	}

	doc, err := patchio.Load(path)
	if err != nil {
		return err
	}
	result, err := compilePatch(cmd, doc, compiler, library)
	if err != nil {
		return err
	}
	return writeResult(cmd, result)
}

// compilePatch runs one document through the compiler and, when a library is
// open, saves the program under its fingerprint.
func compilePatch(cmd *cobra.Command, doc *patchio.Document, compiler *ensemble.Compiler, library *store.Store) (*compileResult, error) {
	if err := doc.CheckRequires(version.Get().Version); err != nil {
		return nil, err
	}

	graph, err := doc.Graph()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	program, err := compiler.Compile(graph)
	if err != nil {
		return nil, err
	}

	fingerprint, err := doc.Fingerprint()
	if err != nil {
		return nil, err
	}

	logger.BatonDebugw("patch compiled",
		logger.FieldPatch, doc.Name,
		logger.FieldStatements, program.Stats.Statements,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	result := &compileResult{
		ID:          fingerprint,
		Name:        doc.Name,
		Source:      program.Source,
		Macros:      program.Macros,
		Diagnostics: program.Diagnostics,
		Stats:       program.Stats,
	}

	if library != nil {
		document, err := doc.JSON()
		if err != nil {
			return nil, err
		}
		if err := library.Save(cmd.Context(), &store.Program{
			ID:       fingerprint,
			Name:     doc.Name,
			Document: document,
			Source:   program.Source,
		}); err != nil {
			return nil, err
		}
		result.Saved = true
	}

	return result, nil
}

// writeResult renders one compilation to the terminal or the output file.
// Diagnostics always go to stderr so piped source stays clean.
func writeResult(cmd *cobra.Command, result *compileResult) error {
	for _, d := range result.Diagnostics {
		pterm.Warning.Printfln("%s", d.String())
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result)
	}

	if compileOutput != "" {
		if err := os.WriteFile(compileOutput, []byte(result.Source), config.DefaultFilePermissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", compileOutput, err)
		}
		pterm.Success.Printfln("Compiled %d statement(s) to %s", result.Stats.Statements, compileOutput)
	} else {
		fmt.Print(result.Source)
	}

	if result.Saved {
		pterm.Info.Printfln("Saved to library as %s", result.ID)
	}
	return nil
}

// watchPatch compiles once, then recompiles on every save until interrupted.
func watchPatch(cmd *cobra.Command, path string, compiler *ensemble.Compiler, library *store.Store, cfg *config.Config) error {
	execArgs, err := parseExecCommand(compileExec)
	if err != nil {
		return err
	}

	// First compile before the watch starts, so a broken patch fails fast
	if doc, err := patchio.Load(path); err != nil {
		pterm.Error.Printfln("%v", err)
	} else if result, err := compilePatch(cmd, doc, compiler, library); err != nil {
		pterm.Error.Printfln("%v", err)
	} else {
		if err := writeResult(cmd, result); err != nil {
			return err
		}
		runExec(execArgs)
	}

	watcher, err := patchio.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer watcher.Stop()
	watcher.SetDebounce(time.Duration(cfg.GetWatchDebounceMs()) * time.Millisecond)

	watcher.OnUpdate(func(doc *patchio.Document) error {
		result, err := compilePatch(cmd, doc, compiler, library)
		if err != nil {
			// Report and keep watching; the next save may fix it
			pterm.Error.Printfln("%v", err)
			return nil
		}
		if err := writeResult(cmd, result); err != nil {
			return err
		}
		runExec(execArgs)
		return nil
	})
	watcher.Start()

	pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	pterm.Info.Println("Watch stopped")
	return nil
}

// parseExecCommand splits the --exec string like a shell would.
func parseExecCommand(command string) ([]string, error) {
	if command == "" {
		return nil, nil
	}
	args, err := shellquote.Split(command)
	if err != nil {
		// If quote parsing fails, fall back to simple split
		args = strings.Fields(command)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("--exec command is empty")
	}
	return args, nil
}

// runExec runs the --exec command, streaming its output through.
func runExec(args []string) {
	if len(args) == 0 {
		return
	}
	c := exec.Command(args[0], args[1:]...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		pterm.Warning.Printfln("exec %s: %v", args[0], err)
	}
}
