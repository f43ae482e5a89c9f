package view

import (
	"iter"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Log emits records and messages as structured log entries.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a Log view backed by logger.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) ShowRecord(r *types.Record) {
	l.logger.Info("record", recordFields(r)...)
}

func (l *Log) ShowAllRecords(records iter.Seq[*types.Record]) {
	n := 0
	for r := range records {
		l.logger.Info("record", recordFields(r)...)
		n++
	}
	l.logger.Info("listed records", zap.Int("count", n))
}

func (l *Log) ShowMessage(msg string) {
	l.logger.Info(msg)
}

func recordFields(r *types.Record) []zap.Field {
	phones := r.Phones()
	numbers := make([]string, len(phones))
	for i, p := range phones {
		numbers[i] = p.String()
	}
	return []zap.Field{
		zap.String("name", string(r.Name())),
		zap.Strings("phones", numbers),
	}
}
