package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for configuration values.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal file descriptor used for hidden input, or -1.
	fd int
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
// Secrets are read without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Ask prints label and returns the trimmed line entered.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskSecret is Ask without echo on a terminal.
func (p *Prompter) AskSecret(label string) (string, error) {
	if p.fd < 0 {
		return p.Ask(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Confirm asks a y/n question. Only "y" (any case) confirms.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question + " (y/n)")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// Collect prompts for a complete configuration.
func (p *Prompter) Collect() (Config, error) {
	key, err := p.AskSecret("Notion API key")
	if err != nil {
		return Config{}, err
	}
	dbID, err := p.Ask("Notion database ID")
	if err != nil {
		return Config{}, err
	}
	cfg := Config{NotionAPIKey: key, DatabaseID: dbID}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
