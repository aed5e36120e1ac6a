package models

// Snapshot is the legacy mobile backup document (snapshot-v1.json). The
// schema originates from a companion mobile client and is structurally
// different from the native Backup format; translation between the two is
// lossy by design.
type Snapshot struct {
	Version SnapshotStamp  `json:"version"`
	Items   []SnapshotItem `json:"items"`
}

// SnapshotStamp is the per-export version stamp the mobile client attaches
// to the document and to every item.
type SnapshotStamp struct {
	TS  int64  `json:"ts"`
	Ctr int    `json:"ctr,omitempty"`
	Dev string `json:"dev"`
}

// SnapshotItem wraps one task record in the mobile schema. Deleted is a
// 0/1 flag; items flagged deleted carry no usable Doc.
type SnapshotItem struct {
	UID     string        `json:"uid"`
	Ver     SnapshotStamp `json:"ver"`
	Deleted int           `json:"deleted"`
	Doc     *SnapshotDoc  `json:"doc,omitempty"`
}

// SnapshotDoc is the mobile task payload. All booleans are 0/1 integers and
// all instants are epoch milliseconds, matching the mobile client's SQLite
// dump format. The schema has no notion of priority or tags.
type SnapshotDoc struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	StartTime       int64  `json:"start_time,omitempty"`
	EndTime         int64  `json:"end_time,omitempty"`
	IsCompleted     int    `json:"is_completed"`
	CompleteTime    int64  `json:"complete_time,omitempty"`
	Note            string `json:"note,omitempty"`
	IsArchived      int    `json:"is_archived"`
	IsStared        int    `json:"is_stared"`
	Type            string `json:"type"`
	HabitCount      int    `json:"habit_count"`
	HabitTotalCount int    `json:"habit_total_count"`
	CalendarEvent   string `json:"calendar_event,omitempty"`
	Timestamp       int64  `json:"timestamp,omitempty"`
}
