package share

import "context"

// Host is what the share command needs from the editor (or terminal)
// it runs in.
type Host interface {
	// SelectedText returns the current selection; ok is false when there
	// is no active editor.
	SelectedText() (text string, ok bool)
	// PromptPassphrase asks for an optional passphrase. ok is false when
	// the prompt was dismissed.
	PromptPassphrase(ctx context.Context, prompt string) (passphrase string, ok bool, err error)
	WithProgress(ctx context.Context, title string, fn func(context.Context) error) error
	// Notify shows an informational message and returns the chosen action,
	// or "" if none was chosen.
	Notify(ctx context.Context, message string, actions ...string) (string, error)
	NotifyError(ctx context.Context, message string)
	WriteClipboard(ctx context.Context, text string) error
}
