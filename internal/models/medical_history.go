package models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// MedicalHistory holds the set-valued medical background for a user.
// Each list column stores a JSON array of strings. Uniqueness is a write-time
// convention (DedupeList), not a database constraint.
type MedicalHistory struct {
	BaseModel
	UserID        string         `gorm:"size:36;uniqueIndex" json:"userId"`
	Allergies     datatypes.JSON `json:"allergies,omitempty"`
	Medications   datatypes.JSON `json:"medications,omitempty"`
	Conditions    datatypes.JSON `json:"conditions,omitempty"`
	Surgeries     datatypes.JSON `json:"surgeries,omitempty"`
	FamilyHistory datatypes.JSON `json:"familyHistory,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// DedupeList trims entries and removes case-insensitive duplicates while
// preserving first-seen order.
func DedupeList(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// MarshalList encodes a string list for storage in a JSON column.
func MarshalList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

// UnmarshalList decodes a JSON column back into a string list.
// Invalid or empty columns decode to nil.
func UnmarshalList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}
