// Package clipboard copies text to the terminal's system clipboard with the
// OSC 52 escape sequence.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// MaxPayload is the largest base64 payload sent in one sequence. Larger
// payloads are dropped by many terminals and multiplexers.
const MaxPayload = 100000

var (
	// ErrPayloadTooLarge is returned when the encoded text exceeds MaxPayload.
	ErrPayloadTooLarge = errors.New("clipboard payload too large")
	// ErrUnsupported is returned when the terminal is unlikely to honour OSC 52.
	ErrUnsupported = errors.New("clipboard not supported by this terminal")
	// ErrNoTerminal is returned when there is no terminal to write to.
	ErrNoTerminal = errors.New("no terminal available for clipboard")
)

var supportedTerms = []string{"xterm", "tmux", "screen", "rxvt", "alacritty", "foot", "kitty", "wezterm"}

// Likely reports whether the terminal described by the environment is
// likely to accept OSC 52.
func Likely(getenv func(string) string) bool {
	if getenv("NO_OSC52") != "" {
		return false
	}
	t := getenv("TERM")
	if t == "" || t == "dumb" || t == "linux" {
		return false
	}
	for _, name := range supportedTerms {
		if strings.Contains(t, name) {
			return true
		}
	}
	return false
}

// StatusMessage is the message shown after a copy attempt.
func StatusMessage(getenv func(string) string) string {
	if Likely(getenv) {
		return "JSON copied to clipboard!"
	}
	if getenv("TMUX") != "" {
		return "Clipboard not supported - tmux needs OSC 52 configuration"
	}
	return "Clipboard not supported by this terminal"
}

// HelpSuffix is appended to the copy line of the help screen when the
// clipboard is unlikely to work, or "" otherwise.
func HelpSuffix(getenv func(string) string) string {
	if Likely(getenv) {
		return ""
	}
	if getenv("TMUX") != "" {
		return " (tmux: requires OSC 52 config)"
	}
	return " (no terminal support)"
}

// Sequence returns the OSC 52 sequence that sets the system clipboard to text.
func Sequence(text string) (string, error) {
	if base64.StdEncoding.EncodedLen(len(text)) > MaxPayload {
		return "", ErrPayloadTooLarge
	}
	return ansi.SetSystemClipboard(text), nil
}

// Writer sends clipboard sequences to a terminal.
type Writer struct {
	Getenv  func(string) string
	OpenTTY func() (io.WriteCloser, error)
	Stdout  *os.File
}

// DefaultWriter writes to /dev/tty, falling back to stdout when stdout is a
// terminal.
func DefaultWriter() *Writer {
	return &Writer{
		Getenv: os.Getenv,
		OpenTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
		Stdout: os.Stdout,
	}
}

// Copy puts text on the clipboard. Nothing is written when the terminal is
// unlikely to support OSC 52 or the payload is too large.
func (w *Writer) Copy(text string) error {
	if !Likely(w.Getenv) {
		return ErrUnsupported
	}
	seq, err := Sequence(text)
	if err != nil {
		return err
	}

	out, err := w.output()
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.WriteString(out, seq); err != nil {
		return fmt.Errorf("write clipboard sequence: %w", err)
	}
	return nil
}

func (w *Writer) output() (io.WriteCloser, error) {
	if w.OpenTTY != nil {
		if tty, err := w.OpenTTY(); err == nil {
			return tty, nil
		}
	}
	if w.Stdout != nil && term.IsTerminal(int(w.Stdout.Fd())) {
		return nopCloser{w.Stdout}, nil
	}
	return nil, ErrNoTerminal
}

// Copy puts text on the clipboard using DefaultWriter.
func Copy(text string) error {
	return DefaultWriter().Copy(text)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
