// Package share runs the "share selected text" command against a Host.
package share

import (
	"context"
	"fmt"

	"github.com/smallwat3r/otshare/internal/domain"
	"github.com/smallwat3r/otshare/internal/logger"

	"go.uber.org/zap"
)

// Submitter creates a secret and returns its share URL.
type Submitter interface {
	SubmitSecret(ctx context.Context, text, passphrase string, region domain.Region, ttl domain.TTL) (string, error)
}

type Command struct {
	submitter Submitter
	region    domain.Region
	ttl       domain.TTL
}

func NewCommand(s Submitter, region domain.Region, ttl domain.TTL) *Command {
	return &Command{submitter: s, region: region, ttl: ttl}
}

// Run shares the host's selection. Every failure is reported to the host
// before being returned. Once the secret exists its URL is returned, even
// when presenting it to the user fails afterwards.
func (c *Command) Run(ctx context.Context, host Host) (string, error) {
	text, ok := host.SelectedText()
	if !ok {
		host.NotifyError(ctx, domain.NoEditorMessage)
		return "", domain.ErrNoActiveEditor
	}
	if text == "" {
		host.NotifyError(ctx, domain.NoSelectionMessage)
		return "", domain.ErrEmptySelection
	}

	passphrase, _, err := host.PromptPassphrase(ctx, domain.PassphrasePrompt)
	if err != nil {
		host.NotifyError(ctx, domain.FailureMessage(err))
		return "", fmt.Errorf("prompt passphrase: %w", err)
	}

	var shareURL string
	err = host.WithProgress(ctx, domain.ProgressTitle, func(ctx context.Context) error {
		url, err := c.submitter.SubmitSecret(ctx, text, passphrase, c.region, c.ttl)
		if err != nil {
			return err
		}
		shareURL = url
		return nil
	})
	if err != nil {
		logger.Log.Warn("share failed", zap.Error(err))
		host.NotifyError(ctx, domain.FailureMessage(err))
		return "", err
	}

	if err := c.present(ctx, host, shareURL); err != nil {
		logger.Log.Warn("secret created but not presented", zap.Error(err))
		host.NotifyError(ctx, domain.CopyFailedPrefix+err.Error())
		return shareURL, err
	}
	return shareURL, nil
}

func (c *Command) present(ctx context.Context, host Host, url string) error {
	action, err := host.Notify(ctx, domain.CreatedMessage, domain.CopyURLAction)
	if err != nil {
		return err
	}
	if action != domain.CopyURLAction {
		return nil
	}
	if err := host.WriteClipboard(ctx, url); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	_, err = host.Notify(ctx, domain.CopiedMessage)
	return err
}
