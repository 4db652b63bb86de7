// Package editor resolves and runs the external text editor an edit
// session hands the serialized table to.
//
// Invocation is deliberately blocking with no timeout or cancellation:
// the user is inside the editor for as long as they need, and the child
// inherits the caller's standard streams so terminal editors work.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Editor is an external editor command. Args lets command strings carry
// their own flags ("code --wait" resolves to Command "code", Args
// ["--wait"]).
type Editor struct {
	Command string
	Args    []string
}

// New splits a command string on whitespace into command and arguments.
func New(command string) Editor {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return Editor{}
	}
	return Editor{Command: parts[0], Args: parts[1:]}
}

// Resolve picks the editor: the explicit override when non-empty,
// otherwise the environment default.
func Resolve(override string) Editor {
	if strings.TrimSpace(override) != "" {
		return New(override)
	}
	return Default()
}

// Default resolves the conventional environment chain: $VISUAL, then
// $EDITOR, then vi.
func Default() Editor {
	if v := os.Getenv("VISUAL"); strings.TrimSpace(v) != "" {
		return New(v)
	}
	if v := os.Getenv("EDITOR"); strings.TrimSpace(v) != "" {
		return New(v)
	}
	return Editor{Command: "vi"}
}

// Edit opens path in the editor and blocks until the editor exits. The
// child inherits stdin, stdout, and stderr.
func (e Editor) Edit(path string) error {
	if e.Command == "" {
		e = Default()
	}

	args := append(append([]string(nil), e.Args...), path)
	cmd := exec.Command(e.Command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", e.Command, err)
	}
	return nil
}
