package view

import (
	"encoding/json"
	"io"
	"iter"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// recordJSON is the JSON shape of a record.
type recordJSON struct {
	Name   string   `json:"name"`
	Phones []string `json:"phones"`
}

// messageJSON is the JSON shape of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// JSON writes machine-readable output. A single record or message is one
// JSON object; a listing is one JSON array.
type JSON struct {
	enc *json.Encoder
}

// NewJSON returns a JSON view that writes to w.
func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSON{enc: enc}
}

func (j *JSON) ShowRecord(r *types.Record) {
	_ = j.enc.Encode(toJSON(r))
}

func (j *JSON) ShowAllRecords(records iter.Seq[*types.Record]) {
	out := make([]recordJSON, 0)
	for r := range records {
		out = append(out, toJSON(r))
	}
	_ = j.enc.Encode(out)
}

func (j *JSON) ShowMessage(msg string) {
	_ = j.enc.Encode(messageJSON{Message: msg})
}

func toJSON(r *types.Record) recordJSON {
	out := recordJSON{Name: string(r.Name()), Phones: make([]string, 0)}
	for _, p := range r.Phones() {
		out.Phones = append(out.Phones, p.String())
	}
	return out
}
