package view

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	phoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	messageStyle = lipgloss.NewStyle().Italic(true)
)

// Styled renders records for a terminal: bold name, dimmed phones.
type Styled struct {
	w io.Writer
}

// NewStyled returns a Styled view that writes to w.
func NewStyled(w io.Writer) *Styled {
	return &Styled{w: w}
}

func (s *Styled) ShowRecord(r *types.Record) {
	fmt.Fprintln(s.w, s.render(r))
}

func (s *Styled) ShowAllRecords(records iter.Seq[*types.Record]) {
	n := 0
	for r := range records {
		fmt.Fprintln(s.w, s.render(r))
		n++
	}
	if n == 0 {
		fmt.Fprintln(s.w, messageStyle.Render(emptyMessage))
	}
}

func (s *Styled) ShowMessage(msg string) {
	fmt.Fprintln(s.w, messageStyle.Render(msg))
}

func (s *Styled) render(r *types.Record) string {
	phones := r.Phones()
	numbers := make([]string, len(phones))
	for i, p := range phones {
		numbers[i] = p.String()
	}
	return nameStyle.Render(string(r.Name())) + "  " + phoneStyle.Render(strings.Join(numbers, ", "))
}
