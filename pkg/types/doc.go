// Package types defines the address book data layer: the Phone and Name
// value types, Record, AddressBook, the View presentation contract, the
// configuration struct, and the standard errors shared by every front-end.
//
// Nothing in this package prints or logs. Every operation either succeeds
// or returns an error that wraps one of the sentinels in errors.go, so
// callers decide how failures are shown.
package types
