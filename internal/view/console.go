package view

import (
	"fmt"
	"io"
	"iter"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Console prints records and messages as plain text lines.
type Console struct {
	w io.Writer
}

// NewConsole returns a Console that writes to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) ShowRecord(r *types.Record) {
	fmt.Fprintln(c.w, r)
}

func (c *Console) ShowAllRecords(records iter.Seq[*types.Record]) {
	n := 0
	for r := range records {
		fmt.Fprintln(c.w, r)
		n++
	}
	if n == 0 {
		fmt.Fprintln(c.w, emptyMessage)
	}
}

func (c *Console) ShowMessage(msg string) {
	fmt.Fprintln(c.w, msg)
}
