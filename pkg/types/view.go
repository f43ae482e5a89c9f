package types

import "iter"

// View renders records and messages for a front-end. The data layer only
// depends on this contract; concrete renderers live with the front-end.
type View interface {
	// ShowRecord displays a single record.
	ShowRecord(r *Record)

	// ShowAllRecords displays every record yielded by records.
	ShowAllRecords(records iter.Seq[*Record])

	// ShowMessage displays a free-form status or error message.
	ShowMessage(msg string)
}
