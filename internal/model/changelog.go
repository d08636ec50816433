package model

import "time"

type OpType string

const (
	OpAdd    OpType = "add"
	OpModify OpType = "modify"
	OpDelete OpType = "delete"
)

// LogEntry is one immutable change-log record. Time is assigned by the document store.
type LogEntry struct {
	ID           string    `json:"id"`
	OpType       OpType    `json:"op_type"`
	Item         string    `json:"item"`
	OldValue     string    `json:"old_value"`
	NewValue     string    `json:"new_value"`
	ChangedValue string    `json:"changed_value"`
	User         string    `json:"user"`
	Time         time.Time `json:"time"`
}

// Complete reports whether the entry carries the fields statistics depend on.
func (e LogEntry) Complete() bool {
	return e.Item != "" && e.OpType != "" && e.User != ""
}

type ChangeLogQuery struct {
	Filter string
	Start  *time.Time
	End    *time.Time
}
