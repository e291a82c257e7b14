// Package terminal implements share.Host for a command line session.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/smallwat3r/otshare/internal/domain"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

type Host struct {
	text          string
	hasText       bool
	askPassphrase bool
	autoCopy      bool

	// messages and prompts go to msgs so stdout carries only the URL
	msgs io.Writer
	tty  *os.File

	isTerminal     func(fd int) bool
	readPassword   func(fd int) ([]byte, error)
	writeClipboard func(text string) error
}

type Options struct {
	AskPassphrase bool
	AutoCopy      bool
	Messages      io.Writer
	TTY           *os.File // passphrase source, usually os.Stdin or /dev/tty
	Clipboard     func(text string) error // defaults to the system clipboard
}

// NewHost treats text as the selection.
func NewHost(text string, opts Options) *Host {
	msgs := opts.Messages
	if msgs == nil {
		msgs = os.Stderr
	}
	writeClipboard := opts.Clipboard
	if writeClipboard == nil {
		writeClipboard = clipboard.WriteAll
	}
	return &Host{
		text:           text,
		hasText:        true,
		askPassphrase:  opts.AskPassphrase,
		autoCopy:       opts.AutoCopy,
		msgs:           msgs,
		tty:            opts.TTY,
		isTerminal:     term.IsTerminal,
		readPassword:   term.ReadPassword,
		writeClipboard: writeClipboard,
	}
}

func (h *Host) SelectedText() (string, bool) {
	return h.text, h.hasText
}

func (h *Host) PromptPassphrase(ctx context.Context, prompt string) (string, bool, error) {
	if !h.askPassphrase {
		return "", false, nil
	}
	if h.tty == nil || !h.isTerminal(int(h.tty.Fd())) {
		return "", false, errors.New("passphrase prompt requires a terminal")
	}

	fmt.Fprintf(h.msgs, "%s: ", prompt)
	b, err := h.readPassword(int(h.tty.Fd()))
	fmt.Fprintln(h.msgs)
	if err != nil {
		return "", false, fmt.Errorf("read passphrase: %w", err)
	}
	return string(b), true, nil
}

func (h *Host) WithProgress(ctx context.Context, title string, fn func(context.Context) error) error {
	fmt.Fprintln(h.msgs, title)
	return fn(ctx)
}

// Notify picks the copy action when auto-copy is on; there is no
// interactive choice on a terminal.
func (h *Host) Notify(ctx context.Context, message string, actions ...string) (string, error) {
	fmt.Fprintln(h.msgs, message)
	if h.autoCopy && slices.Contains(actions, domain.CopyURLAction) {
		return domain.CopyURLAction, nil
	}
	return "", nil
}

func (h *Host) NotifyError(ctx context.Context, message string) {
	fmt.Fprintln(h.msgs, message)
}

func (h *Host) WriteClipboard(ctx context.Context, text string) error {
	return h.writeClipboard(text)
}
