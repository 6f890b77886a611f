// Package display formats command output for humans and for tools.
package display

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"
)

// MarshalJSON marshals JSON with compact formatting for piped output,
// pretty formatting for terminals
func MarshalJSON(v interface{}) ([]byte, error) {
	if stdoutIsTerminal() {
		return json.MarshalIndent(v, "", "  ")
	}
	// Compact JSON when output feeds another program
	return json.Marshal(v)
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
