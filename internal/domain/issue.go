package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status represents the lifecycle state of an issue. Every transition
// between the three states is permitted.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority represents the urgency of an issue: 1=high, 2=medium, 3=low.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// TimeLayout is the wire and storage format for issue timestamps:
// UTC, second precision, lexicographically sortable.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is a UTC second-precision instant serialized as
// "YYYY-MM-DD HH:MM:SS" both in JSON and in the database.
type Timestamp time.Time

// Now returns the current instant truncated to second precision.
func Now() Timestamp {
	return Timestamp(time.Now().UTC().Truncate(time.Second))
}

// Time returns the underlying time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Time(t).UTC()
}

func (t Timestamp) String() string {
	return t.Time().Format(TimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// Value implements driver.Valuer; timestamps are stored as TEXT.
func (t Timestamp) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := time.Parse(TimeLayout, v)
		if err != nil {
			return fmt.Errorf("scan timestamp %q: %w", v, err)
		}
		*t = Timestamp(parsed)
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = Timestamp(v.UTC().Truncate(time.Second))
		return nil
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

// Issue is the single tracked unit of work.
type Issue struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Priority    Priority  `json:"priority" db:"priority"`
	CreatedAt   Timestamp `json:"created_at" db:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at" db:"updated_at"`
}

// IssuePatch is a partial update: only non-nil fields are applied.
type IssuePatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Empty reports whether the patch carries no fields at all.
func (p IssuePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}
