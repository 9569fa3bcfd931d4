package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/romario-developer/despesas-pwa/internal/money"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetDefault is GetSimpleText showing def in brackets; an empty answer
// keeps def.
func GetDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// GetAmount asks until a valid pt-BR amount ("1.234,56") is entered. An
// empty answer keeps def when hasDef is set.
func GetAmount(reader *bufio.Reader, prompt string, def float64, hasDef bool, w io.Writer) (float64, error) {
	shown := ""
	if hasDef {
		shown = money.FormatBRL(def)
	}
	for {
		s, err := GetDefault(reader, prompt, shown, w)
		if err != nil {
			return 0, err
		}
		if hasDef && s == shown {
			return def, nil
		}
		v, err := money.ParseFloat(s)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(w, "Valor inválido, use por exemplo 1.234,56")
	}
}

// Confirm asks a yes/no question; only "s" or "sim" count as yes.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" (s/N)", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "s", "sim", "y", "yes":
		return true, nil
	}
	return false, nil
}

// GetPassword prints prompt to w and reads a password without echo when
// stdin is a terminal, or a plain line from reader otherwise.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		s, err := GetSimpleText(reader, prompt, w)
		return []byte(s), err
	}
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
