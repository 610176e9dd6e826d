package models

import (
	"sort"
	"time"
)

// SymptomTimelineEntry is one append-only row in a consultation's symptom log.
// RecordedAt is caller supplied and not required to be monotonic: out-of-order
// entries are accepted and sorted at read time. Seq is a per-table insertion
// counter used to break timestamp ties stably.
type SymptomTimelineEntry struct {
	BaseModel
	ConsultationID string    `gorm:"size:36;index;not null" json:"consultationId"`
	Symptom        string    `gorm:"size:255;not null" json:"symptom"`
	Severity       int       `gorm:"not null" json:"severity"` // 1..10
	Location       string    `gorm:"size:255" json:"location,omitempty"`
	Quality        string    `gorm:"size:255" json:"quality,omitempty"`
	Duration       string    `gorm:"size:255" json:"duration,omitempty"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt     time.Time `gorm:"index;not null" json:"recordedAt"`
	Seq            uint64    `gorm:"autoIncrement;uniqueIndex" json:"-"`

	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
}

// SortTimeline orders entries by RecordedAt ascending, ties broken by
// insertion order. The analysis orchestrator consumes this ordering.
func SortTimeline(entries []SymptomTimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].Seq < entries[j].Seq
		}
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})
}
