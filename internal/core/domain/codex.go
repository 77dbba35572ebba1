package domain

import "time"

// CodexEntryType categorises a world-building entry.
type CodexEntryType string

const (
	CodexCharacter CodexEntryType = "character"
	CodexLocation  CodexEntryType = "location"
	CodexObject    CodexEntryType = "object"
	CodexLore      CodexEntryType = "lore"
	CodexSubplot   CodexEntryType = "subplot"
	CodexOther     CodexEntryType = "other"
)

// ValidCodexType reports whether t is a known entry type.
func ValidCodexType(t CodexEntryType) bool {
	switch t {
	case CodexCharacter, CodexLocation, CodexObject, CodexLore, CodexSubplot, CodexOther:
		return true
	}
	return false
}

// CodexEntry is one world-building record: a character, location, item,
// piece of lore, subplot, or anything else the writer tracks.
type CodexEntry struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"projectId"`
	Type        CodexEntryType    `json:"type"`
	Name        string            `json:"name"`
	Aliases     []string          `json:"aliases"`
	Description *Document         `json:"description"`
	Notes       string            `json:"notes"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	Tags        []string          `json:"tags"`
	FieldValues map[string]string `json:"fieldValues"`
	Color       string            `json:"color,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CodexRelation is a directed labelled edge between two codex entries.
type CodexRelation struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	SourceID  string `json:"sourceId"`
	TargetID  string `json:"targetId"`
	Label     string `json:"label"`
}
