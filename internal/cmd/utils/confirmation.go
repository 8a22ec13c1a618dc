package cmdUtils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/linkfarm/linkfarm/internal/settings"
	"golang.org/x/term"
)

type ConfirmationPromptOptions struct {
	InvalidBehavior settings.ConfirmationPromptBehavior
	EmptyBehavior   settings.ConfirmationPromptBehavior
}

func ConfirmationOptionsFromSettings(cfg *settings.Settings) ConfirmationPromptOptions {
	return ConfirmationPromptOptions{
		InvalidBehavior: cfg.Confirmation.Invalid,
		EmptyBehavior:   cfg.Confirmation.Empty,
	}
}

// Ask a yes/no question on stderr and read the answer from stdin.
//
// When stdin is not a terminal, nobody can answer, so the
// configured behavior for empty input is applied immediately.
func ConfirmationInput(msg string, opts ConfirmationPromptOptions) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "%s\n", color.GreenString("|> %s", msg))
		return emptyInput(os.Stderr, opts.EmptyBehavior, true)
	}

	return confirm(os.Stdin, os.Stderr, msg, opts)
}

func confirm(r io.Reader, w io.Writer, msg string, opts ConfirmationPromptOptions) (bool, error) {
	scanner := bufio.NewScanner(r)

	for {
		fmt.Fprintf(w, "%s\n[y/n]: ", color.GreenString("|> %s", msg))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			// EOF; retrying would never get an answer.
			return emptyInput(w, opts.EmptyBehavior, true)
		}

		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		if len(input) == 0 {
			answer, err := emptyInput(w, opts.EmptyBehavior, false)
			if err == errRetry {
				continue
			}
			return answer, err
		}

		switch input[0] {
		case 'y':
			return true, nil
		case 'n':
			return false, nil
		}

		switch opts.InvalidBehavior {
		case settings.ConfirmationPromptRetry:
			fmt.Fprintf(w, "error: invalid input '%s'; must be y/n\n", input)
			continue
		case settings.ConfirmationPromptDefaultNo:
			fmt.Fprintf(w, "warning: invalid input '%s'; defaulting to no\n", input)
			return false, nil
		case settings.ConfirmationPromptDefaultYes:
			fmt.Fprintf(w, "warning: invalid input '%s'; defaulting to yes\n", input)
			return true, nil
		default:
			return false, fmt.Errorf("unhandled InvalidBehavior case: %s", opts.InvalidBehavior)
		}
	}
}

var errRetry = fmt.Errorf("retry confirmation input")

func emptyInput(w io.Writer, behavior settings.ConfirmationPromptBehavior, closed bool) (bool, error) {
	switch behavior {
	case settings.ConfirmationPromptRetry:
		if closed {
			fmt.Fprintln(w, "no input available; defaulting to no")
			return false, nil
		}
		fmt.Fprintln(w, "error: input must not be empty")
		return false, errRetry
	case settings.ConfirmationPromptDefaultNo:
		fmt.Fprintln(w, "no input provided; defaulting to no")
		return false, nil
	case settings.ConfirmationPromptDefaultYes:
		fmt.Fprintln(w, "no input provided; defaulting to yes")
		return true, nil
	default:
		return false, fmt.Errorf("unhandled EmptyBehavior case: %s", behavior)
	}
}
