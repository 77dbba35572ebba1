package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// manuscriptFixture seeds a project owned by user-1 whose manuscript is
// a book with two chapters, the first holding two scenes.
func manuscriptFixture(t *testing.T) (*mocks.MockProjectStore, *mocks.MockTrashStore, string) {
	t.Helper()
	projects := mocks.NewMockProjectStore()
	trash := mocks.NewMockTrashStore()

	doc := &domain.Document{Content: []domain.Node{
		domain.Heading(1, "Book"),
		domain.Paragraph("intro"),
		domain.Heading(2, "Chapter One"),
		domain.Paragraph("one"),
		domain.Heading(3, "Scene A"),
		domain.Paragraph("alpha"),
		domain.Heading(3, "Scene B"),
		domain.Paragraph("beta"),
		domain.Heading(2, "Chapter Two"),
		domain.Paragraph("two"),
	}}

	project := &domain.Project{
		ID:        "proj-1",
		UserID:    "user-1",
		Title:     "Test Novel",
		Content:   doc,
		WordCount: domain.DocumentWordCount(*doc),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := projects.Create(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return projects, trash, project.ID
}

func TestManuscriptService_GetContent(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	mc, err := svc.GetContent(context.Background(), "user-1", projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mc.Content.Content) != 10 {
		t.Errorf("expected 10 nodes, got %d", len(mc.Content.Content))
	}
}

func TestManuscriptService_GetContent_WrongOwner(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	_, err := svc.GetContent(context.Background(), "someone-else", projectID)
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManuscriptService_UpdateContent(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	doc := &domain.Document{Content: []domain.Node{
		domain.Paragraph("こんにちは world"),
	}}
	mc, err := svc.UpdateContent(context.Background(), "user-1", projectID, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.WordCount != 6 {
		t.Errorf("expected word count 6, got %d", mc.WordCount)
	}

	stored, err := projects.GetContent(context.Background(), projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.WordCount != 6 {
		t.Errorf("expected persisted word count 6, got %d", stored.WordCount)
	}
}

func TestManuscriptService_UpdateContent_NilDocument(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	_, err := svc.UpdateContent(context.Background(), "user-1", projectID, nil)
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestManuscriptService_Outline(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	outline, err := svc.Outline(context.Background(), "user-1", projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 1 {
		t.Fatalf("expected 1 root section, got %d", len(outline))
	}
	if outline[0].Title != "Book" {
		t.Errorf("expected root title Book, got %q", outline[0].Title)
	}
	if len(outline[0].Children) != 2 {
		t.Errorf("expected 2 chapters, got %d", len(outline[0].Children))
	}
}

func TestManuscriptService_MoveSection(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	// Scene A is ordinal 2; moving it down swaps it with Scene B
	mc, err := svc.MoveSection(context.Background(), "user-1", projectID, 2, domain.MoveDown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outline, err := svc.Outline(context.Background(), "user-1", projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scenes := outline[0].Children[0].Children
	if scenes[0].Title != "Scene B" || scenes[1].Title != "Scene A" {
		t.Errorf("expected scenes swapped, got %q then %q", scenes[0].Title, scenes[1].Title)
	}
	if len(mc.Content.Content) != 10 {
		t.Errorf("expected node count preserved, got %d", len(mc.Content.Content))
	}
}

func TestManuscriptService_MoveSection_NoSibling(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	before, _ := projects.GetContent(context.Background(), projectID)

	// The root heading has no sibling; the document comes back unchanged
	mc, err := svc.MoveSection(context.Background(), "user-1", projectID, 0, domain.MoveUp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mc.Content.Content) != len(before.Content.Content) {
		t.Errorf("expected unchanged document")
	}
	if mc.Content.Content[0].Type != domain.NodeHeading {
		t.Errorf("expected heading still first")
	}
}

func TestManuscriptService_SwapSections(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	// Chapters are ordinals 1 and 4
	_, err := svc.SwapSections(context.Background(), "user-1", projectID, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outline, _ := svc.Outline(context.Background(), "user-1", projectID)
	chapters := outline[0].Children
	if chapters[0].Title != "Chapter Two" {
		t.Errorf("expected Chapter Two first, got %q", chapters[0].Title)
	}
}

func TestManuscriptService_ChangeSectionLevel(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	// Promote Chapter One to level 1; it leaves the book's subtree
	mc, err := svc.ChangeSectionLevel(context.Background(), "user-1", projectID, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mc.Content.Content[2].HeadingLevel(); got != 1 {
		t.Errorf("expected level 1, got %d", got)
	}

	outline, _ := svc.Outline(context.Background(), "user-1", projectID)
	if len(outline) != 2 {
		t.Fatalf("expected 2 root sections after promotion, got %d", len(outline))
	}
}

func TestManuscriptService_TrashSection(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	// Trash Scene A (ordinal 2): heading plus paragraph leave the doc
	mc, err := svc.TrashSection(context.Background(), "user-1", projectID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mc.Content.Content) != 8 {
		t.Errorf("expected 8 nodes after trash, got %d", len(mc.Content.Content))
	}

	entries, err := svc.ListTrash(context.Background(), "user-1", projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 trash entry, got %d", len(entries))
	}
	if entries[0].Title != "Scene A" {
		t.Errorf("expected trash title Scene A, got %q", entries[0].Title)
	}
	if entries[0].Level != 3 {
		t.Errorf("expected trash level 3, got %d", entries[0].Level)
	}
	if len(entries[0].Content) != 2 {
		t.Errorf("expected 2 trashed nodes, got %d", len(entries[0].Content))
	}
}

func TestManuscriptService_TrashSection_WriteFailureAborts(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	trash.AddErr = errors.New("trash unavailable")
	svc := NewManuscriptService(projects, trash, testLogger())

	_, err := svc.TrashSection(context.Background(), "user-1", projectID, 2)
	if err == nil {
		t.Fatal("expected error when trash write fails")
	}

	// The document must be untouched
	mc, _ := projects.GetContent(context.Background(), projectID)
	if len(mc.Content.Content) != 10 {
		t.Errorf("expected document unchanged, got %d nodes", len(mc.Content.Content))
	}
}

func TestManuscriptService_TrashSection_OutOfRange(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	mc, err := svc.TrashSection(context.Background(), "user-1", projectID, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mc.Content.Content) != 10 {
		t.Errorf("expected unchanged document, got %d nodes", len(mc.Content.Content))
	}
	entries, _ := svc.ListTrash(context.Background(), "user-1", projectID)
	if len(entries) != 0 {
		t.Errorf("expected no trash entries, got %d", len(entries))
	}
}

func TestManuscriptService_RestoreSection(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	before, _ := projects.GetContent(context.Background(), projectID)
	beforeWords := before.WordCount

	if _, err := svc.TrashSection(context.Background(), "user-1", projectID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, _ := svc.ListTrash(context.Background(), "user-1", projectID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 trash entry, got %d", len(entries))
	}

	mc, err := svc.RestoreSection(context.Background(), "user-1", projectID, entries[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mc.Content.Content) != 10 {
		t.Errorf("expected 10 nodes after restore, got %d", len(mc.Content.Content))
	}
	if mc.WordCount != beforeWords {
		t.Errorf("expected word count %d after restore, got %d", beforeWords, mc.WordCount)
	}

	// Restored content lands at the end of the document
	last := mc.Content.Content[len(mc.Content.Content)-1]
	if domain.FlattenText(last) != "alpha" {
		t.Errorf("expected restored paragraph last, got %q", domain.FlattenText(last))
	}

	entries, _ = svc.ListTrash(context.Background(), "user-1", projectID)
	if len(entries) != 0 {
		t.Errorf("expected empty trash after restore, got %d entries", len(entries))
	}
}

func TestManuscriptService_RestoreSection_WrongProject(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	other := &domain.Project{
		ID:      "proj-2",
		UserID:  "user-1",
		Title:   "Other",
		Content: &domain.Document{},
	}
	_ = projects.Create(context.Background(), other)

	if _, err := svc.TrashSection(context.Background(), "user-1", projectID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, _ := svc.ListTrash(context.Background(), "user-1", projectID)

	_, err := svc.RestoreSection(context.Background(), "user-1", "proj-2", entries[0].ID)
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManuscriptService_DeleteTrashEntry(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	if _, err := svc.TrashSection(context.Background(), "user-1", projectID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, _ := svc.ListTrash(context.Background(), "user-1", projectID)

	if err := svc.DeleteTrashEntry(context.Background(), "user-1", projectID, entries[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ = svc.ListTrash(context.Background(), "user-1", projectID)
	if len(entries) != 0 {
		t.Errorf("expected empty trash, got %d entries", len(entries))
	}

	// Permanently deleted content cannot be restored
	mc, _ := projects.GetContent(context.Background(), projectID)
	if len(mc.Content.Content) != 8 {
		t.Errorf("expected 8 nodes, got %d", len(mc.Content.Content))
	}
}

func TestManuscriptService_ImportMarkdown(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	src := "# Imported\n\nSome text here.\n"
	mc, err := svc.ImportMarkdown(context.Background(), "user-1", projectID, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mc.Content.Content) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(mc.Content.Content))
	}
	if mc.Content.Content[0].Type != domain.NodeHeading {
		t.Errorf("expected heading first, got %s", mc.Content.Content[0].Type)
	}
	if domain.FlattenText(mc.Content.Content[0]) != "Imported" {
		t.Errorf("expected heading text Imported, got %q", domain.FlattenText(mc.Content.Content[0]))
	}
}

func TestManuscriptService_ImportMarkdown_Empty(t *testing.T) {
	projects, trash, projectID := manuscriptFixture(t)
	svc := NewManuscriptService(projects, trash, testLogger())

	_, err := svc.ImportMarkdown(context.Background(), "user-1", projectID, "")
	if err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
