package domain

const (
	// MaxSecretSize is the maximum secret size accepted by the bridge (64 KB).
	MaxSecretSize = 64 * 1024

	// MaxRequestBodySize is the maximum allowed request body size.
	// Set slightly larger than MaxSecretSize to account for JSON overhead.
	MaxRequestBodySize = MaxSecretSize + 1024

	// ConcealPath is appended to a region's API base URL to create a secret.
	ConcealPath = "/secret/conceal"

	// FailurePrefix is prepended to every user-facing submission failure.
	FailurePrefix = "Failed to create OneTimeSecret: "
)

// Messages shown by the share command.
const (
	NoEditorMessage    = "No active editor found"
	NoSelectionMessage = "No text selected"
	ProgressTitle      = "Creating OneTimeSecret..."
	CreatedMessage     = "OneTimeSecret has been created"
	CopiedMessage      = "Secret URL copied to clipboard"
	CopyFailedPrefix   = "OneTimeSecret was created but its URL could not be copied: "
	CopyURLAction      = "Copy URL"
	PassphrasePrompt   = "Enter a passphrase to protect your secret (optional)"
)
