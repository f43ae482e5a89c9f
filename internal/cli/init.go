package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and an empty address book",
		Long: `Init writes config.yaml to the configuration directory if it is missing,
then creates an empty address book at the data file location unless one
already exists. Existing files are left untouched. The data file is written
to config.yaml only when --data-file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// data_file is recorded only when given on the command line, so the
			// per-backend default and ADDRESSBOOK_DATA_FILE still apply later.
			cfg := a.config
			if a.flags.dataFile == "" {
				cfg.DataFile = ""
			}
			written, err := writeConfigIfMissing(a.configDir, cfg)
			if err != nil {
				return systemErr(err)
			}
			if written {
				a.view.ShowMessage(fmt.Sprintf("Configuration written to %s", a.configDir))
			}

			if _, err := os.Stat(a.config.DataFile); err == nil {
				a.view.ShowMessage(fmt.Sprintf("Address book already exists at %s", a.config.DataFile))
				return nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return systemErr(fmt.Errorf("stat data file: %w", err))
			}

			book, err := a.load()
			if err != nil {
				return err
			}
			if err := a.save(book); err != nil {
				return err
			}
			a.view.ShowMessage(fmt.Sprintf("Address book initialized at %s", a.config.DataFile))
			return nil
		},
	}
}
