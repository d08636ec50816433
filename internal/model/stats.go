package model

import "time"

// ItemStats summarises change-log activity for one item label inside a window.
type ItemStats struct {
	Item        string `json:"item"`
	AddCount    int    `json:"add_count"`
	DeleteCount int    `json:"delete_count"`
	ModifyCount int    `json:"modify_count"`
	TopUser     string `json:"top_user,omitempty"`
}

// Total returns the number of counted operations.
func (s ItemStats) Total() int {
	return s.AddCount + s.DeleteCount + s.ModifyCount
}

type StatsSort string

const (
	StatsSortNone     StatsSort = ""
	StatsSortItem     StatsSort = "item"
	StatsSortActivity StatsSort = "activity"
)

type StatsQuery struct {
	Filter string
	Start  *time.Time
	End    *time.Time
	Sort   StatsSort
}

// Window is a resolved, inclusive time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies inside the inclusive window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

type StatsPage struct {
	Window    Window      `json:"window"`
	Stats     []ItemStats `json:"stats"`
	ChangeLog []LogEntry  `json:"change_log"`
}
