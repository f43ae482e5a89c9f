// Package view provides the renderers that implement types.View.
package view

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// emptyMessage is shown when there are no records to list.
const emptyMessage = "No contacts."

// Options configures New.
type Options struct {
	// Output is one of the types.Output* constants. Empty means text.
	Output string

	// Writer receives rendered output. Defaults to os.Stdout.
	Writer io.Writer

	// Logger backs the log output. Defaults to a no-op logger.
	Logger *zap.Logger

	// ForcePlain disables styling for text output even on a terminal.
	ForcePlain bool
}

// New returns the view for opts.Output. Text output is styled when the
// writer is a terminal, plain otherwise.
func New(opts Options) (types.View, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	switch opts.Output {
	case "", types.OutputText:
		if opts.ForcePlain || !IsTerminal(opts.Writer) {
			return NewConsole(opts.Writer), nil
		}
		return NewStyled(opts.Writer), nil
	case types.OutputJSON:
		return NewJSON(opts.Writer), nil
	case types.OutputLog:
		logger := opts.Logger
		if logger == nil {
			logger = zap.NewNop()
		}
		return NewLog(logger), nil
	default:
		return nil, fmt.Errorf("%q: %w", opts.Output, types.ErrOutputUnknown)
	}
}

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	_ types.View = (*Console)(nil)
	_ types.View = (*Styled)(nil)
	_ types.View = (*JSON)(nil)
	_ types.View = (*Log)(nil)
)
