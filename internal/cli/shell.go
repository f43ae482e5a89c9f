package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/fake"
	"github.com/mesh-intelligence/addressbook/internal/view"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

const (
	commandPrompt = "Enter command (add, edit, delete, show, find, save, generate, exit): "
	msgSaved      = "Address book saved"
	msgExit       = "Saving address book and exiting"
	msgUnknown    = "Unknown command"

	// maxInputLine bounds one line of shell input.
	maxInputLine = 1 << 20
)

// shell is the interactive command loop. It keeps one AddressBook in
// memory and saves it on "save", "exit", and end of input.
type shell struct {
	app     *app
	book    *types.AddressBook
	in      *bufio.Scanner
	out     io.Writer
	prompts bool
	gen     contactGenerator
}

func (a *app) newShellCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive address book shell",
		Long: `Shell reads commands from standard input, one per line:

  add       add a contact (prompts for name and phone)
  edit      replace a phone number (prompts for name, old and new phone)
  delete    remove a contact (prompts for name)
  show      list every contact
  find      show one contact (prompts for name)
  save      write the address book to disk
  generate  add a random contact
  exit      save and quit (end of input does the same)

Prompts are printed only when standard input is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.load()
			if err != nil {
				return err
			}
			in := bufio.NewScanner(cmd.InOrStdin())
			in.Buffer(make([]byte, 0, 64*1024), maxInputLine)
			s := &shell{
				app:     a,
				book:    book,
				in:      in,
				out:     cmd.OutOrStdout(),
				prompts: view.IsTerminal(cmd.InOrStdin()),
				gen:     fake.NewGenerator(seed),
			}
			return s.run()
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for generate (default: random)")
	return cmd
}

// run processes commands until exit or end of input, then saves.
func (s *shell) run() error {
	for {
		line, ok := s.ask(commandPrompt)
		if !ok {
			return s.quit()
		}
		switch strings.ToLower(line) {
		case "":
			continue
		case "add":
			s.add()
		case "edit":
			s.edit()
		case "delete":
			s.delete()
		case "show", "list":
			s.app.view.ShowAllRecords(s.book.All())
		case "find":
			s.find()
		case "save":
			if err := s.app.save(s.book); err != nil {
				s.app.view.ShowMessage(err.Error())
				continue
			}
			s.app.view.ShowMessage(msgSaved)
		case "generate":
			s.generate()
		case "exit", "quit":
			return s.quit()
		default:
			s.app.view.ShowMessage(msgUnknown)
		}
	}
}

// ask prints prompt (on a terminal) and reads one trimmed line. It returns
// false at end of input.
func (s *shell) ask(prompt string) (string, bool) {
	if s.prompts {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// askAll asks each prompt in turn. It returns false if input ends early.
func (s *shell) askAll(prompts ...string) ([]string, bool) {
	answers := make([]string, 0, len(prompts))
	for _, p := range prompts {
		answer, ok := s.ask(p)
		if !ok {
			return nil, false
		}
		answers = append(answers, answer)
	}
	return answers, true
}

// quit saves the book. A read error is returned after the save so edits
// made before it are kept.
func (s *shell) quit() error {
	saveErr := s.app.save(s.book)
	if err := s.in.Err(); err != nil {
		return errors.Join(systemErr(fmt.Errorf("read input: %w", err)), saveErr)
	}
	if saveErr != nil {
		return saveErr
	}
	s.app.view.ShowMessage(msgExit)
	return nil
}

// report shows a failed command's error and keeps the shell running.
func (s *shell) report(err error) {
	s.app.view.ShowMessage(err.Error())
}

func (s *shell) add() {
	in, ok := s.askAll("Enter name: ", "Enter phone number: ")
	if !ok {
		return
	}
	r, err := addContact(s.book, in[0], in[1])
	if err != nil {
		s.report(err)
		return
	}
	s.app.view.ShowMessage(fmt.Sprintf("Record added: %s", r))
}

func (s *shell) edit() {
	in, ok := s.askAll("Enter name: ", "Enter old phone number: ", "Enter new phone number: ")
	if !ok {
		return
	}
	r, err := editPhone(s.book, in[0], in[1], in[2])
	if err != nil {
		s.report(err)
		return
	}
	s.app.view.ShowMessage(fmt.Sprintf("Record updated: %s", r))
}

func (s *shell) delete() {
	name, ok := s.ask("Enter name: ")
	if !ok {
		return
	}
	if err := deleteContact(s.book, name); err != nil {
		s.report(err)
		return
	}
	s.app.view.ShowMessage(fmt.Sprintf("Record deleted for %s", name))
}

func (s *shell) find() {
	name, ok := s.ask("Enter name: ")
	if !ok {
		return
	}
	r, err := findRecord(s.book, name)
	if err != nil {
		s.report(err)
		return
	}
	s.app.view.ShowRecord(r)
}

func (s *shell) generate() {
	r, err := generateContact(s.book, s.gen)
	if err != nil {
		s.report(err)
		return
	}
	s.app.view.ShowMessage(fmt.Sprintf("Generated and added record: %s", r))
}
