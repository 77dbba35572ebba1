package domain

import "time"

// Project is one novel: metadata plus the manuscript content.
type Project struct {
	ID              string          `json:"id"`
	UserID          string          `json:"-"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Genre           string          `json:"genre"`
	TargetWordCount int             `json:"targetWordCount"`
	Content         *Document       `json:"content"`
	WordCount       int             `json:"wordCount"`
	Settings        ProjectSettings `json:"settings"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProjectSettings holds per-project label and status vocabularies.
type ProjectSettings struct {
	Labels   []LabelDef  `json:"labels"`
	Statuses []StatusDef `json:"statuses"`
}

// LabelDef is a user-defined binder label.
type LabelDef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// StatusDef is a user-defined writing status.
type StatusDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultProjectSettings returns the label/status vocabulary a fresh
// project starts with.
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		Labels: []LabelDef{
			{ID: "label-1", Name: "章", Color: "#3b82f6"},
			{ID: "label-2", Name: "シーン", Color: "#10b981"},
			{ID: "label-3", Name: "アイデア", Color: "#f59e0b"},
			{ID: "label-4", Name: "要修正", Color: "#ef4444"},
		},
		Statuses: []StatusDef{
			{ID: "status-1", Name: "未着手"},
			{ID: "status-2", Name: "下書き"},
			{ID: "status-3", Name: "推敲済み"},
			{ID: "status-4", Name: "完了"},
		},
	}
}

// ManuscriptContent is the manuscript payload loaded and saved by the
// editor: the document plus its cached word count. The in-memory editor
// state is authoritative; a save response never overwrites local edits.
type ManuscriptContent struct {
	Content   *Document `json:"content"`
	WordCount int       `json:"wordCount"`
}
