package domain

import "time"

// BinderItemType tags a binder tree node.
type BinderItemType string

const (
	BinderFolder   BinderItemType = "folder"
	BinderScene    BinderItemType = "scene"
	BinderResearch BinderItemType = "research"
)

// BinderItem is a node in the materialized parent-pointer binder tree.
// Siblings order by SortOrder lexicographically; keys are fractional so an
// item can be placed between two others without renumbering.
type BinderItem struct {
	ID               string         `json:"id"`
	ProjectID        string         `json:"projectId"`
	ParentID         string         `json:"parentId,omitempty"`
	SortOrder        string         `json:"sortOrder"`
	Type             BinderItemType `json:"type"`
	Title            string         `json:"title"`
	Synopsis         string         `json:"synopsis"`
	Content          *Document      `json:"content"`
	Notes            string         `json:"notes"`
	WordCount        int            `json:"wordCount"`
	LabelID          string         `json:"labelId,omitempty"`
	StatusID         string         `json:"statusId,omitempty"`
	IncludeInCompile bool           `json:"includeInCompile"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// DefaultSortOrder is the key a first sibling gets.
const DefaultSortOrder = "a0"

// MidSortOrder returns a key that sorts strictly between a and b. Either
// bound may be empty (open end). Keys grow one character at a time, so
// repeated insertion between the same neighbours stays bounded.
//
// Bounds are expected to be distinct generated keys. Degenerate intervals
// that admit no key in between (equal bounds, or an upper bound that is
// the lower bound extended with zeros) return the lower bound unchanged;
// listing breaks such ties by creation time.
func MidSortOrder(a, b string) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

	if a == "" && b == "" {
		return DefaultSortOrder
	}
	if a == b {
		return a
	}

	// Walk positions until the bounds diverge by more than one step.
	// Once the key drops strictly below b the upper bound no longer
	// constrains later positions.
	var out []byte
	tight := b != ""
	for i := 0; ; i++ {
		lo := 0
		if i < len(a) {
			lo = indexOfDigit(digits, a[i])
		}
		hi := len(digits)
		if tight {
			if i >= len(b) {
				return a
			}
			hi = indexOfDigit(digits, b[i])
		}

		if hi-lo > 1 {
			out = append(out, digits[(lo+hi)/2])
			return string(out)
		}
		if lo != hi {
			tight = false
		}
		out = append(out, digits[lo])
	}
}

func indexOfDigit(digits string, c byte) int {
	for i := 0; i < len(digits); i++ {
		if digits[i] == c {
			return i
		}
	}
	return 0
}
