package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/smallwat3r/otshare/internal/config"
	"github.com/smallwat3r/otshare/internal/domain"
	"github.com/smallwat3r/otshare/internal/logger"
	"github.com/smallwat3r/otshare/internal/ots"
	"github.com/smallwat3r/otshare/internal/share"
	"github.com/smallwat3r/otshare/internal/terminal"
	"github.com/smallwat3r/otshare/internal/utility"
)

// newSubmitter is swapped out in tests.
var newSubmitter = func(cfg config.Config) share.Submitter {
	return ots.NewClient(ots.WithTimeout(cfg.HTTPTimeout))
}

// writeClipboard is nil outside tests, leaving the system clipboard in place.
var writeClipboard func(text string) error

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr, args)
		return 1
	}

	switch args[1] {
	case "share":
		return runShare(args[2:], stdin, stdout, stderr)
	case "regions":
		for _, r := range domain.Regions() {
			fmt.Fprintf(stdout, "%-4s %-4s %s\n", r.Key(), r.Title(), r.WebBaseURL())
		}
		return 0
	case "ttls":
		for _, t := range domain.TTLs() {
			fmt.Fprintf(stdout, "%-4s %-8s %s\n", t.Key(), t.Value(), t.Display())
		}
		return 0
	case "help":
		printUsage(stdout, args)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr, args)
		return 1
	}
}

func printUsage(w io.Writer, args []string) {
	fmt.Fprintf(w, "Usage: %s <command> [arguments]\n", args[0])
	fmt.Fprintln(w, "Share text as a one-time secret on onetimesecret.com.")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  share [flags] [file]  Share a file, or stdin, and print the secret URL")
	fmt.Fprintln(w, "                        Flags may also follow the file")
	fmt.Fprintln(w, "      -region eu|us     Service region")
	fmt.Fprintln(w, "      -ttl 7d|1d|1h     Time before an unread secret expires")
	fmt.Fprintln(w, "      -passphrase       Prompt for a passphrase")
	fmt.Fprintln(w, "      -copy             Copy the URL to the clipboard")
	fmt.Fprintln(w, "  regions               List regions")
	fmt.Fprintln(w, "  ttls                  List expiry options")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w, "\nEnvironment variables:")
	fmt.Fprintln(w, "  OTS_REGION            Default region (default: eu)")
	fmt.Fprintln(w, "  OTS_TTL               Default expiry (default: 7d)")
	fmt.Fprintln(w, "  OTS_HTTP_TIMEOUT      Request timeout, e.g. 30s (default: none)")
	fmt.Fprintln(w, "  LOG_LEVEL             Log level (default: warn)")
}

func runShare(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}

	// quieter than the bridge: stderr is shared with the user-facing messages
	if err := logger.Initialize(utility.Getenv("LOG_LEVEL", "warn")); err != nil {
		fmt.Fprintf(stderr, "invalid LOG_LEVEL: %v\n", err)
		return 1
	}
	defer logger.Log.Sync()

	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	fs.SetOutput(stderr)
	regionFlag := fs.String("region", cfg.Region.Key(), "service region (eu, us)")
	ttlFlag := fs.String("ttl", cfg.TTL.Key(), "expiry (7d, 1d, 1h)")
	askPassphrase := fs.Bool("passphrase", false, "prompt for a passphrase")
	autoCopy := fs.Bool("copy", false, "copy the URL to the clipboard")
	// flag stops at the first positional argument, so flags given after
	// the file are parsed on a later pass
	var files []string
	for {
		if err := fs.Parse(args); err != nil {
			return 2
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		files = append(files, args[0])
		args = args[1:]
	}

	region, err := domain.ParseRegion(*regionFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	ttl, err := domain.ParseTTL(*ttlFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	text, err := readSelection(files, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	tty := os.Stdin
	if *askPassphrase {
		if f, err := os.Open("/dev/tty"); err == nil {
			defer f.Close()
			tty = f
		}
	}

	host := terminal.NewHost(text, terminal.Options{
		AskPassphrase: *askPassphrase,
		AutoCopy:      *autoCopy,
		Messages:      stderr,
		TTY:           tty,
		Clipboard:     writeClipboard,
	})

	cmd := share.NewCommand(newSubmitter(cfg), region, ttl)
	url, err := cmd.Run(context.Background(), host)
	// a secret that was created is printed even when copying its URL failed
	if url != "" {
		fmt.Fprintln(stdout, url)
	}
	if err != nil {
		// the host has already reported the failure
		if errors.Is(err, domain.ErrEmptySelection) {
			return 2
		}
		return 1
	}
	return 0
}

func readSelection(args []string, stdin io.Reader) (string, error) {
	switch len(args) {
	case 0:
		b, err := io.ReadAll(io.LimitReader(stdin, domain.MaxSecretSize+1))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return checkSize(b)
	case 1:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return checkSize(b)
	default:
		return "", errors.New("share takes at most one file")
	}
}

func checkSize(b []byte) (string, error) {
	if len(b) > domain.MaxSecretSize {
		return "", fmt.Errorf("secret exceeds %d bytes", domain.MaxSecretSize)
	}
	return string(b), nil
}
