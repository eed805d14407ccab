package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecret returns SPECTRE_SECRET when set, otherwise prompts on the
// terminal without echo. A non-terminal stdin is read up to the first newline.
func readSecret(in io.Reader, prompt io.Writer, userName string) (string, error) {
	if s := os.Getenv("SPECTRE_SECRET"); s != "" {
		return s, nil
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(prompt, "Secret for %s: ", userName)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
