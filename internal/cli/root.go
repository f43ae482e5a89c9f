// Package cli implements the addressbook command-line interface: one-shot
// subcommands that load the book, apply a change, and save it, plus the
// interactive shell.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/internal/view"
	"github.com/mesh-intelligence/addressbook/pkg/persist"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataFile  string
	backend   string
	output    string
	verbose   bool
}

// app is the state shared by every subcommand once setup has run.
type app struct {
	root  *cobra.Command
	flags rootFlags

	configDir string
	config    types.Config
	logger    *zap.Logger
	view      types.View
	store     persist.Backend
}

// NewRootCmd creates the top-level "addressbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newApp().root
}

func newApp() *app {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "addressbook",
		Short: "A personal address book for names and phone numbers",
		Long: `Addressbook stores contacts (a name and any number of 10-digit phone
numbers) in a local file. Run a single command, or start the interactive
shell with "addressbook shell".`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	a.root = root

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataFile, "data-file", "", "address book file (default: ./addressbook.jsonl)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: jsonl or sqlite (default: jsonl)")
	root.PersistentFlags().StringVar(&a.flags.output, "output", "", "output format: text, json or log (default: text)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newAddCmd())
	root.AddCommand(a.newAddPhoneCmd())
	root.AddCommand(a.newEditCmd())
	root.AddCommand(a.newRemovePhoneCmd())
	root.AddCommand(a.newDeleteCmd())
	root.AddCommand(a.newFindCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newGenerateCmd())
	root.AddCommand(a.newShellCmd())

	return a
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	a := newApp()
	err := a.root.Execute()
	if err != nil {
		a.reportError(a.root.ErrOrStderr(), err)
	}
	return exitCode(err)
}

// reportError writes err to w in the configured output format. Before the
// configuration is resolved it falls back to plain text.
func (a *app) reportError(w io.Writer, err error) {
	msg := "addressbook: " + err.Error()
	if a.config.Output == "" {
		fmt.Fprintln(w, msg)
		return
	}
	v, verr := view.New(view.Options{
		Output:     a.config.Output,
		Writer:     w,
		Logger:     newViewLogger(w),
		ForcePlain: true,
	})
	if verr != nil {
		fmt.Fprintln(w, msg)
		return
	}
	v.ShowMessage(msg)
}

// setup resolves configuration and builds the logger, view and store
// backend. It runs before every subcommand except version.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemErr(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir, cmd.Root().PersistentFlags())
	if err != nil {
		return systemErr(err)
	}

	cfg := types.Config{
		Backend: v.GetString(cfgKeyBackend),
		Output:  v.GetString(cfgKeyOutput),
	}
	cfg.DataFile, err = paths.ResolveDataFile(a.flags.dataFile, v.GetString(cfgKeyDataFile), cfg.Backend)
	if err != nil {
		return systemErr(fmt.Errorf("resolve data file: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return systemErr(fmt.Errorf("invalid config: %w", err))
	}
	a.config = cfg

	a.logger = newDiagnosticLogger(cmd.ErrOrStderr(), a.flags.verbose)
	a.logger.Debug("configuration resolved",
		zap.String("config_dir", configDir),
		zap.String("backend", cfg.Backend),
		zap.String("data_file", cfg.DataFile),
		zap.String("output", cfg.Output),
	)

	a.store, err = persist.NewBackend(cfg.Backend)
	if err != nil {
		return systemErr(err)
	}

	a.view, err = view.New(view.Options{
		Output: cfg.Output,
		Writer: cmd.OutOrStdout(),
		Logger: newViewLogger(cmd.OutOrStdout()),
	})
	if err != nil {
		return systemErr(err)
	}
	return nil
}

// sysError marks failures outside the user's control (I/O, corrupt data,
// configuration) so Execute can pick the exit code.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemErr(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) || errors.Is(err, types.ErrCorruptData) {
		return exitSysError
	}
	return exitUserError
}
