package domain

// IssueSeverity grades a proofreading finding.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// ProofreadingIssue is one finding from the proofreading service.
// Original is the exact source text the issue refers to; it is how the
// issue is located in the document after the fact.
type ProofreadingIssue struct {
	ID         string        `json:"id"`
	Category   string        `json:"category"`
	Severity   IssueSeverity `json:"severity"`
	Original   string        `json:"original"`
	Suggestion string        `json:"suggestion"`
	Reason     string        `json:"reason"`
	Context    string        `json:"context"`
}

// ProofreadingResult is the full response of one proofreading pass.
type ProofreadingResult struct {
	Issues  []ProofreadingIssue `json:"issues"`
	Summary string              `json:"summary"`
}

// LocatedIssue is an issue matched to a position in the document's text
// projection, for highlighting and replacement.
type LocatedIssue struct {
	Issue ProofreadingIssue `json:"issue"`
	From  int               `json:"from"` // rune offset into the text projection
	To    int               `json:"to"`
}

// LocateIssues maps each issue's Original substring onto the document's
// current text projection. An issue whose text is no longer present (the
// document was edited since the scan) is silently dropped rather than
// erroring. Stale findings simply do not highlight.
func LocateIssues(d Document, issues []ProofreadingIssue) []LocatedIssue {
	text := []rune(d.TextProjection())
	var out []LocatedIssue
	for _, issue := range issues {
		if issue.Original == "" {
			continue
		}
		needle := []rune(issue.Original)
		at := runeIndex(text, needle)
		if at < 0 {
			continue
		}
		out = append(out, LocatedIssue{
			Issue: issue,
			From:  at,
			To:    at + len(needle),
		})
	}
	return out
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
