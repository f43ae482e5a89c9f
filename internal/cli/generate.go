package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/fake"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Add randomly generated contacts",
		Long: `Generate adds contacts with random names and valid phone numbers.
A generated name that already exists replaces that contact.

Example:
  addressbook generate
  addressbook generate --count 20 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			gen := fake.NewGenerator(seed)
			var added []*types.Record
			err := a.mutate(func(book *types.AddressBook) error {
				for range count {
					r, err := generateContact(book, gen)
					if err != nil {
						return err
					}
					added = append(added, r)
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, r := range added {
				a.view.ShowMessage(fmt.Sprintf("Generated and added record: %s", r))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of contacts to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	return cmd
}
