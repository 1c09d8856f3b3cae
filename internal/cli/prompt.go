package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// promptKey reads the key from the terminal without echo. It fails when
// stdin is not a terminal, so scripts must pass the key explicitly.
func promptKey(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no key given and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("empty key")
	}
	return string(b), nil
}
