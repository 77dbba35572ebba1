package services

import (
	"context"
	"testing"
	"time"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driven/mocks"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

func codexFixture(t *testing.T) (*mocks.MockCodexStore, driving.CodexService) {
	t.Helper()
	projects := mocks.NewMockProjectStore()
	codex := mocks.NewMockCodexStore()
	project := &domain.Project{
		ID:        "proj-1",
		UserID:    "user-1",
		Title:     "Novel",
		Content:   &domain.Document{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := projects.Create(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return codex, NewCodexService(projects, codex)
}

func TestCodexService_CreateEntry(t *testing.T) {
	_, svc := codexFixture(t)

	entry, err := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type:    domain.CodexCharacter,
		Name:    "  月島 蓮  ",
		Aliases: []string{"レン"},
		Tags:    []string{"主人公"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID == "" {
		t.Error("expected generated ID")
	}
	if entry.Name != "月島 蓮" {
		t.Errorf("expected trimmed name, got %q", entry.Name)
	}
	if entry.Description == nil {
		t.Error("expected empty description document, got nil")
	}
	if entry.FieldValues == nil {
		t.Error("expected field values map initialized")
	}
}

func TestCodexService_CreateEntryInvalid(t *testing.T) {
	_, svc := codexFixture(t)

	if _, err := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: "spaceship",
		Name: "X",
	}); err != domain.ErrInvalidInput {
		t.Errorf("unknown type: expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: domain.CodexCharacter,
		Name: "   ",
	}); err != domain.ErrInvalidInput {
		t.Errorf("blank name: expected ErrInvalidInput, got %v", err)
	}
}

func TestCodexService_OwnershipScoping(t *testing.T) {
	_, svc := codexFixture(t)

	if _, err := svc.ListEntries(context.Background(), "intruder", "proj-1", ""); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestCodexService_UpdateEntryPartial(t *testing.T) {
	_, svc := codexFixture(t)

	entry, err := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type:  domain.CodexLocation,
		Name:  "旧図書館",
		Notes: "二階は立入禁止",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "中央図書館"
	updated, err := svc.UpdateEntry(context.Background(), "user-1", "proj-1", entry.ID, driving.UpdateCodexEntryRequest{
		Name: &newName,
		Tags: []string{"舞台"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "中央図書館" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.Notes != "二階は立入禁止" {
		t.Errorf("notes should be preserved, got %q", updated.Notes)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "舞台" {
		t.Errorf("tags not updated: %v", updated.Tags)
	}
}

func TestCodexService_ListEntriesTypeFilter(t *testing.T) {
	_, svc := codexFixture(t)

	for _, e := range []struct {
		typ  domain.CodexEntryType
		name string
	}{
		{domain.CodexCharacter, "蓮"},
		{domain.CodexCharacter, "葵"},
		{domain.CodexLocation, "図書館"},
	} {
		if _, err := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
			Type: e.typ, Name: e.name,
		}); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	characters, err := svc.ListEntries(context.Background(), "user-1", "proj-1", domain.CodexCharacter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(characters) != 2 {
		t.Errorf("expected 2 characters, got %d", len(characters))
	}

	all, err := svc.ListEntries(context.Background(), "user-1", "proj-1", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}

	if _, err := svc.ListEntries(context.Background(), "user-1", "proj-1", "spaceship"); err != domain.ErrInvalidInput {
		t.Errorf("unknown filter: expected ErrInvalidInput, got %v", err)
	}
}

func TestCodexService_Relations(t *testing.T) {
	_, svc := codexFixture(t)

	ren, _ := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: domain.CodexCharacter, Name: "蓮",
	})
	aoi, _ := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: domain.CodexCharacter, Name: "葵",
	})

	relation, err := svc.CreateRelation(context.Background(), "user-1", "proj-1", driving.CreateCodexRelationRequest{
		SourceID: ren.ID,
		TargetID: aoi.ID,
		Label:    "幼馴染",
	})
	if err != nil {
		t.Fatalf("create relation: %v", err)
	}
	if relation.Label != "幼馴染" {
		t.Errorf("unexpected label %q", relation.Label)
	}

	relations, err := svc.ListRelations(context.Background(), "user-1", "proj-1", ren.ID)
	if err != nil {
		t.Fatalf("list relations: %v", err)
	}
	if len(relations) != 1 {
		t.Errorf("expected 1 relation, got %d", len(relations))
	}

	if err := svc.DeleteRelation(context.Background(), "user-1", "proj-1", relation.ID); err != nil {
		t.Fatalf("delete relation: %v", err)
	}
	relations, _ = svc.ListRelations(context.Background(), "user-1", "proj-1", ren.ID)
	if len(relations) != 0 {
		t.Errorf("expected no relations after delete, got %d", len(relations))
	}
}

func TestCodexService_RelationValidation(t *testing.T) {
	_, svc := codexFixture(t)

	ren, _ := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: domain.CodexCharacter, Name: "蓮",
	})

	if _, err := svc.CreateRelation(context.Background(), "user-1", "proj-1", driving.CreateCodexRelationRequest{
		SourceID: ren.ID,
		TargetID: ren.ID,
		Label:    "self",
	}); err != domain.ErrInvalidInput {
		t.Errorf("self relation: expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.CreateRelation(context.Background(), "user-1", "proj-1", driving.CreateCodexRelationRequest{
		SourceID: ren.ID,
		TargetID: "missing",
		Label:    "ghost",
	}); err != domain.ErrNotFound {
		t.Errorf("missing endpoint: expected ErrNotFound, got %v", err)
	}
}

func TestCodexService_DeleteEntryCascadesRelations(t *testing.T) {
	codex, svc := codexFixture(t)

	ren, _ := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: domain.CodexCharacter, Name: "蓮",
	})
	aoi, _ := svc.CreateEntry(context.Background(), "user-1", "proj-1", driving.CreateCodexEntryRequest{
		Type: domain.CodexCharacter, Name: "葵",
	})
	if _, err := svc.CreateRelation(context.Background(), "user-1", "proj-1", driving.CreateCodexRelationRequest{
		SourceID: ren.ID, TargetID: aoi.ID, Label: "幼馴染",
	}); err != nil {
		t.Fatalf("create relation: %v", err)
	}

	if err := svc.DeleteEntry(context.Background(), "user-1", "proj-1", ren.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}

	relations, err := codex.ListRelations(context.Background(), aoi.ID)
	if err != nil {
		t.Fatalf("list relations: %v", err)
	}
	if len(relations) != 0 {
		t.Errorf("expected relations cascade deleted, got %d", len(relations))
	}
}
