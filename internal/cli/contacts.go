package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <phone> [phone...]",
		Short: "Add a contact, replacing any contact with the same name",
		Long: `Add creates a contact with the given name and phone numbers. Each phone
number must be exactly 10 digits. A contact with the same name is replaced,
not merged; use add-phone to extend an existing contact.

Example:
  addressbook add Olena 0501234567
  addressbook add "Ivan Franko" 0931112233 0671112233`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added *types.Record
			err := a.mutate(func(book *types.AddressBook) error {
				r, err := addContact(book, args[0], args[1:]...)
				added = r
				return err
			})
			if err != nil {
				return err
			}
			a.view.ShowMessage(fmt.Sprintf("Record added: %s", added))
			return nil
		},
	}
}

func (a *app) newAddPhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-phone <name> <phone>",
		Short: "Add a phone number to an existing contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated *types.Record
			err := a.mutate(func(book *types.AddressBook) error {
				r, err := addPhone(book, args[0], args[1])
				updated = r
				return err
			})
			if err != nil {
				return err
			}
			a.view.ShowMessage(fmt.Sprintf("Record updated: %s", updated))
			return nil
		},
	}
}

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name> <old-phone> <new-phone>",
		Short: "Replace one of a contact's phone numbers",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated *types.Record
			err := a.mutate(func(book *types.AddressBook) error {
				r, err := editPhone(book, args[0], args[1], args[2])
				updated = r
				return err
			})
			if err != nil {
				return err
			}
			a.view.ShowMessage(fmt.Sprintf("Record updated: %s", updated))
			return nil
		},
	}
}

func (a *app) newRemovePhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-phone <name> <phone>",
		Short: "Remove a phone number from a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated *types.Record
			err := a.mutate(func(book *types.AddressBook) error {
				r, err := removePhone(book, args[0], args[1])
				updated = r
				return err
			})
			if err != nil {
				return err
			}
			a.view.ShowMessage(fmt.Sprintf("Record updated: %s", updated))
			return nil
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.mutate(func(book *types.AddressBook) error {
				return deleteContact(book, args[0])
			})
			if err != nil {
				return err
			}
			a.view.ShowMessage(fmt.Sprintf("Record deleted for %s", args[0]))
			return nil
		},
	}
}

func (a *app) newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Show a contact by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.load()
			if err != nil {
				return err
			}
			r, err := findRecord(book, args[0])
			if err != nil {
				return err
			}
			a.view.ShowRecord(r)
			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"show"},
		Short:   "Show every contact",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.load()
			if err != nil {
				return err
			}
			a.view.ShowAllRecords(book.All())
			return nil
		},
	}
}
