package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

// Mock services for testing

type mockAuthService struct {
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	logoutFn        func(ctx context.Context, token string) error
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID string) error {
	return nil
}

type mockUserService struct {
	setupFn      func(ctx context.Context, req driving.SetupRequest) (*domain.UserSummary, error)
	getFn        func(ctx context.Context, id string) (*domain.UserSummary, error)
	needsSetupFn func(ctx context.Context) (bool, error)
}

func (m *mockUserService) Setup(ctx context.Context, req driving.SetupRequest) (*domain.UserSummary, error) {
	if m.setupFn != nil {
		return m.setupFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) NeedsSetup(ctx context.Context) (bool, error) {
	if m.needsSetupFn != nil {
		return m.needsSetupFn(ctx)
	}
	return false, nil
}

type mockProjectService struct {
	createFn func(ctx context.Context, userID string, req driving.CreateProjectRequest) (*domain.Project, error)
	getFn    func(ctx context.Context, userID, projectID string) (*domain.Project, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Project, error)
	updateFn func(ctx context.Context, userID, projectID string, req driving.UpdateProjectRequest) (*domain.Project, error)
	deleteFn func(ctx context.Context, userID, projectID string) error
}

func (m *mockProjectService) Create(ctx context.Context, userID string, req driving.CreateProjectRequest) (*domain.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProjectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, projectID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProjectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProjectService) Update(ctx context.Context, userID, projectID string, req driving.UpdateProjectRequest) (*domain.Project, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, projectID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProjectService) Delete(ctx context.Context, userID, projectID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, projectID)
	}
	return errors.New("not implemented")
}

type mockManuscriptService struct {
	getContentFn    func(ctx context.Context, userID, projectID string) (*domain.ManuscriptContent, error)
	updateContentFn func(ctx context.Context, userID, projectID string, content *domain.Document) (*domain.ManuscriptContent, error)
	outlineFn       func(ctx context.Context, userID, projectID string) ([]*domain.Section, error)
	moveSectionFn   func(ctx context.Context, userID, projectID string, ordinal int, dir domain.MoveDirection) (*domain.ManuscriptContent, error)
	swapSectionsFn  func(ctx context.Context, userID, projectID string, a, b int) (*domain.ManuscriptContent, error)
	changeLevelFn   func(ctx context.Context, userID, projectID string, ordinal, level int) (*domain.ManuscriptContent, error)
	trashSectionFn  func(ctx context.Context, userID, projectID string, ordinal int) (*domain.ManuscriptContent, error)
	listTrashFn     func(ctx context.Context, userID, projectID string) ([]*domain.TrashedSection, error)
	restoreFn       func(ctx context.Context, userID, projectID, trashID string) (*domain.ManuscriptContent, error)
	deleteTrashFn   func(ctx context.Context, userID, projectID, trashID string) error
	importFn        func(ctx context.Context, userID, projectID, source string) (*domain.ManuscriptContent, error)
}

func (m *mockManuscriptService) GetContent(ctx context.Context, userID, projectID string) (*domain.ManuscriptContent, error) {
	if m.getContentFn != nil {
		return m.getContentFn(ctx, userID, projectID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) UpdateContent(ctx context.Context, userID, projectID string, content *domain.Document) (*domain.ManuscriptContent, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, userID, projectID, content)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) Outline(ctx context.Context, userID, projectID string) ([]*domain.Section, error) {
	if m.outlineFn != nil {
		return m.outlineFn(ctx, userID, projectID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) MoveSection(ctx context.Context, userID, projectID string, ordinal int, dir domain.MoveDirection) (*domain.ManuscriptContent, error) {
	if m.moveSectionFn != nil {
		return m.moveSectionFn(ctx, userID, projectID, ordinal, dir)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) SwapSections(ctx context.Context, userID, projectID string, a, b int) (*domain.ManuscriptContent, error) {
	if m.swapSectionsFn != nil {
		return m.swapSectionsFn(ctx, userID, projectID, a, b)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) ChangeSectionLevel(ctx context.Context, userID, projectID string, ordinal, level int) (*domain.ManuscriptContent, error) {
	if m.changeLevelFn != nil {
		return m.changeLevelFn(ctx, userID, projectID, ordinal, level)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) TrashSection(ctx context.Context, userID, projectID string, ordinal int) (*domain.ManuscriptContent, error) {
	if m.trashSectionFn != nil {
		return m.trashSectionFn(ctx, userID, projectID, ordinal)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) ListTrash(ctx context.Context, userID, projectID string) ([]*domain.TrashedSection, error) {
	if m.listTrashFn != nil {
		return m.listTrashFn(ctx, userID, projectID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) RestoreSection(ctx context.Context, userID, projectID, trashID string) (*domain.ManuscriptContent, error) {
	if m.restoreFn != nil {
		return m.restoreFn(ctx, userID, projectID, trashID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockManuscriptService) DeleteTrashEntry(ctx context.Context, userID, projectID, trashID string) error {
	if m.deleteTrashFn != nil {
		return m.deleteTrashFn(ctx, userID, projectID, trashID)
	}
	return errors.New("not implemented")
}

func (m *mockManuscriptService) ImportMarkdown(ctx context.Context, userID, projectID, source string) (*domain.ManuscriptContent, error) {
	if m.importFn != nil {
		return m.importFn(ctx, userID, projectID, source)
	}
	return nil, errors.New("not implemented")
}

type mockBinderService struct {
	createFn func(ctx context.Context, userID, projectID string, req driving.CreateBinderItemRequest) (*domain.BinderItem, error)
	listFn   func(ctx context.Context, userID, projectID string) ([]*domain.BinderItem, error)
	moveFn   func(ctx context.Context, userID, projectID, itemID string, req driving.MoveBinderItemRequest) (*domain.BinderItem, error)
}

func (m *mockBinderService) Create(ctx context.Context, userID, projectID string, req driving.CreateBinderItemRequest) (*domain.BinderItem, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, projectID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBinderService) Get(ctx context.Context, userID, projectID, itemID string) (*domain.BinderItem, error) {
	return nil, errors.New("not implemented")
}

func (m *mockBinderService) List(ctx context.Context, userID, projectID string) ([]*domain.BinderItem, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, projectID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBinderService) Update(ctx context.Context, userID, projectID, itemID string, req driving.UpdateBinderItemRequest) (*domain.BinderItem, error) {
	return nil, errors.New("not implemented")
}

func (m *mockBinderService) Move(ctx context.Context, userID, projectID, itemID string, req driving.MoveBinderItemRequest) (*domain.BinderItem, error) {
	if m.moveFn != nil {
		return m.moveFn(ctx, userID, projectID, itemID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBinderService) Delete(ctx context.Context, userID, projectID, itemID string) error {
	return errors.New("not implemented")
}

type mockCodexService struct {
	createEntryFn    func(ctx context.Context, userID, projectID string, req driving.CreateCodexEntryRequest) (*domain.CodexEntry, error)
	listEntriesFn    func(ctx context.Context, userID, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error)
	createRelationFn func(ctx context.Context, userID, projectID string, req driving.CreateCodexRelationRequest) (*domain.CodexRelation, error)
}

func (m *mockCodexService) CreateEntry(ctx context.Context, userID, projectID string, req driving.CreateCodexEntryRequest) (*domain.CodexEntry, error) {
	if m.createEntryFn != nil {
		return m.createEntryFn(ctx, userID, projectID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCodexService) GetEntry(ctx context.Context, userID, projectID, entryID string) (*domain.CodexEntry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCodexService) ListEntries(ctx context.Context, userID, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error) {
	if m.listEntriesFn != nil {
		return m.listEntriesFn(ctx, userID, projectID, entryType)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCodexService) UpdateEntry(ctx context.Context, userID, projectID, entryID string, req driving.UpdateCodexEntryRequest) (*domain.CodexEntry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCodexService) DeleteEntry(ctx context.Context, userID, projectID, entryID string) error {
	return errors.New("not implemented")
}

func (m *mockCodexService) CreateRelation(ctx context.Context, userID, projectID string, req driving.CreateCodexRelationRequest) (*domain.CodexRelation, error) {
	if m.createRelationFn != nil {
		return m.createRelationFn(ctx, userID, projectID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCodexService) ListRelations(ctx context.Context, userID, projectID, entryID string) ([]*domain.CodexRelation, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCodexService) DeleteRelation(ctx context.Context, userID, projectID, relationID string) error {
	return errors.New("not implemented")
}

type mockProofreadService struct {
	proofreadProjectFn func(ctx context.Context, userID, projectID string) (*driving.ProofreadReport, error)
	proofreadTextFn    func(ctx context.Context, userID string, text string) (*domain.ProofreadingResult, error)
}

func (m *mockProofreadService) ProofreadProject(ctx context.Context, userID, projectID string) (*driving.ProofreadReport, error) {
	if m.proofreadProjectFn != nil {
		return m.proofreadProjectFn(ctx, userID, projectID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProofreadService) ProofreadText(ctx context.Context, userID string, text string) (*domain.ProofreadingResult, error) {
	if m.proofreadTextFn != nil {
		return m.proofreadTextFn(ctx, userID, text)
	}
	return nil, errors.New("not implemented")
}

type mockCompileService struct {
	compileFn func(ctx context.Context, userID, projectID string, format driving.CompileFormat) (*driving.CompileResult, error)
}

func (m *mockCompileService) Compile(ctx context.Context, userID, projectID string, format driving.CompileFormat) (*driving.CompileResult, error) {
	if m.compileFn != nil {
		return m.compileFn(ctx, userID, projectID, format)
	}
	return nil, errors.New("not implemented")
}

// Test helpers

type testMocks struct {
	auth       *mockAuthService
	user       *mockUserService
	project    *mockProjectService
	manuscript *mockManuscriptService
	binder     *mockBinderService
	codex      *mockCodexService
	proofread  *mockProofreadService
	compile    *mockCompileService
}

func newTestServer() (*Server, *testMocks) {
	mocks := &testMocks{
		auth: &mockAuthService{
			validateTokenFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
				if token == "valid-token" {
					return &domain.AuthContext{UserID: "user-1", Email: "writer@example.com", SessionID: "sess-1"}, nil
				}
				return nil, domain.ErrTokenInvalid
			},
		},
		user:       &mockUserService{},
		project:    &mockProjectService{},
		manuscript: &mockManuscriptService{},
		binder:     &mockBinderService{},
		codex:      &mockCodexService{},
		proofread:  &mockProofreadService{},
		compile:    &mockCompileService{},
	}

	server := NewServer(DefaultConfig(),
		mocks.auth, mocks.user, mocks.project, mocks.manuscript,
		mocks.binder, mocks.codex, mocks.proofread, mocks.compile,
		nil, nil)
	return server, mocks
}

// doRequest routes a request through the server mux with a valid token
func doRequest(server *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)
	return rr
}

// Health and auth

func TestHealthHandler(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("expected status 'ok', got %s", response["status"])
	}
}

func TestVersionHandler(t *testing.T) {
	server, _ := newTestServer()
	server.version = "1.2.3"

	req := httptest.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["version"] != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %s", response["version"])
	}
}

func TestLoginSuccess(t *testing.T) {
	server, mocks := newTestServer()
	mocks.auth.authenticateFn = func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
		if req.Email != "writer@example.com" || req.Password != "secret123" {
			return nil, domain.ErrInvalidCredentials
		}
		return &domain.LoginResponse{Token: "tok", User: &domain.UserSummary{ID: "user-1"}}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/auth/login",
		domain.LoginRequest{Email: "writer@example.com", Password: "secret123"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp domain.LoginResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "tok" {
		t.Errorf("expected token 'tok', got %s", resp.Token)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server, mocks := newTestServer()
	mocks.auth.authenticateFn = func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
		return nil, domain.ErrInvalidCredentials
	}

	rr := doRequest(server, "POST", "/api/v1/auth/login",
		domain.LoginRequest{Email: "writer@example.com", Password: "wrong"})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestLoginInvalidJSON(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestAuthenticatedRouteRejectsMissingToken(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/v1/projects", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestAuthenticatedRouteRejectsBadToken(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestSetupFlow(t *testing.T) {
	server, mocks := newTestServer()
	mocks.user.needsSetupFn = func(ctx context.Context) (bool, error) { return true, nil }
	mocks.user.setupFn = func(ctx context.Context, req driving.SetupRequest) (*domain.UserSummary, error) {
		return &domain.UserSummary{ID: "user-1", Email: req.Email, Name: req.Name}, nil
	}

	rr := doRequest(server, "GET", "/api/v1/setup", nil)
	var check map[string]bool
	if err := json.NewDecoder(rr.Body).Decode(&check); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !check["needsSetup"] {
		t.Error("expected needsSetup true")
	}

	rr = doRequest(server, "POST", "/api/v1/setup",
		driving.SetupRequest{Email: "writer@example.com", Password: "secret123", Name: "Writer"})
	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
}

func TestSetupAlreadyComplete(t *testing.T) {
	server, mocks := newTestServer()
	mocks.user.setupFn = func(ctx context.Context, req driving.SetupRequest) (*domain.UserSummary, error) {
		return nil, domain.ErrForbidden
	}

	rr := doRequest(server, "POST", "/api/v1/setup",
		driving.SetupRequest{Email: "writer@example.com", Password: "secret123", Name: "Writer"})
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rr.Code)
	}
}

func TestGetMe(t *testing.T) {
	server, mocks := newTestServer()
	mocks.user.getFn = func(ctx context.Context, id string) (*domain.UserSummary, error) {
		if id != "user-1" {
			t.Errorf("expected user-1, got %s", id)
		}
		return &domain.UserSummary{ID: id, Email: "writer@example.com"}, nil
	}

	rr := doRequest(server, "GET", "/api/v1/me", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}

// Projects

func TestCreateProject(t *testing.T) {
	server, mocks := newTestServer()
	mocks.project.createFn = func(ctx context.Context, userID string, req driving.CreateProjectRequest) (*domain.Project, error) {
		if userID != "user-1" {
			t.Errorf("expected user-1, got %s", userID)
		}
		return &domain.Project{ID: "proj-1", Title: req.Title}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects",
		driving.CreateProjectRequest{Title: "夜の庭"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	var project domain.Project
	if err := json.NewDecoder(rr.Body).Decode(&project); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if project.Title != "夜の庭" {
		t.Errorf("expected title 夜の庭, got %s", project.Title)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	server, mocks := newTestServer()
	mocks.project.getFn = func(ctx context.Context, userID, projectID string) (*domain.Project, error) {
		return nil, domain.ErrNotFound
	}

	rr := doRequest(server, "GET", "/api/v1/projects/other", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestDeleteProject(t *testing.T) {
	server, mocks := newTestServer()
	var deleted string
	mocks.project.deleteFn = func(ctx context.Context, userID, projectID string) error {
		deleted = projectID
		return nil
	}

	rr := doRequest(server, "DELETE", "/api/v1/projects/proj-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if deleted != "proj-1" {
		t.Errorf("expected proj-1 deleted, got %s", deleted)
	}
}

// Manuscript

func TestUpdateContent(t *testing.T) {
	server, mocks := newTestServer()
	mocks.manuscript.updateContentFn = func(ctx context.Context, userID, projectID string, content *domain.Document) (*domain.ManuscriptContent, error) {
		return &domain.ManuscriptContent{Content: content, WordCount: 6}, nil
	}

	doc := domain.Document{Content: []domain.Node{domain.Paragraph("こんにちは world")}}
	rr := doRequest(server, "PUT", "/api/v1/projects/proj-1/content",
		map[string]any{"content": doc})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp domain.ManuscriptContent
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WordCount != 6 {
		t.Errorf("expected word count 6, got %d", resp.WordCount)
	}
}

func TestGetOutlineEmptyDocument(t *testing.T) {
	server, mocks := newTestServer()
	mocks.manuscript.outlineFn = func(ctx context.Context, userID, projectID string) ([]*domain.Section, error) {
		return nil, nil
	}

	rr := doRequest(server, "GET", "/api/v1/projects/proj-1/outline", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestMoveSection(t *testing.T) {
	server, mocks := newTestServer()
	var gotOrdinal int
	var gotDir domain.MoveDirection
	mocks.manuscript.moveSectionFn = func(ctx context.Context, userID, projectID string, ordinal int, dir domain.MoveDirection) (*domain.ManuscriptContent, error) {
		gotOrdinal, gotDir = ordinal, dir
		return &domain.ManuscriptContent{}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/sections/2/move",
		map[string]string{"direction": "down"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotOrdinal != 2 || gotDir != domain.MoveDown {
		t.Errorf("expected ordinal 2 down, got %d %s", gotOrdinal, gotDir)
	}
}

func TestMoveSectionInvalidDirection(t *testing.T) {
	server, _ := newTestServer()

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/sections/2/move",
		map[string]string{"direction": "sideways"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestMoveSectionInvalidOrdinal(t *testing.T) {
	server, _ := newTestServer()

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/sections/abc/move",
		map[string]string{"direction": "up"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestSwapSections(t *testing.T) {
	server, mocks := newTestServer()
	var gotA, gotB int
	mocks.manuscript.swapSectionsFn = func(ctx context.Context, userID, projectID string, a, b int) (*domain.ManuscriptContent, error) {
		gotA, gotB = a, b
		return &domain.ManuscriptContent{}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/sections/swap",
		map[string]int{"a": 1, "b": 4})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotA != 1 || gotB != 4 {
		t.Errorf("expected swap 1 4, got %d %d", gotA, gotB)
	}
}

func TestChangeSectionLevel(t *testing.T) {
	server, mocks := newTestServer()
	mocks.manuscript.changeLevelFn = func(ctx context.Context, userID, projectID string, ordinal, level int) (*domain.ManuscriptContent, error) {
		if ordinal != 1 || level != 1 {
			t.Errorf("expected ordinal 1 level 1, got %d %d", ordinal, level)
		}
		return &domain.ManuscriptContent{}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/sections/1/level",
		map[string]int{"level": 1})
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestTrashAndRestore(t *testing.T) {
	server, mocks := newTestServer()
	mocks.manuscript.trashSectionFn = func(ctx context.Context, userID, projectID string, ordinal int) (*domain.ManuscriptContent, error) {
		return &domain.ManuscriptContent{WordCount: 10}, nil
	}
	mocks.manuscript.restoreFn = func(ctx context.Context, userID, projectID, trashID string) (*domain.ManuscriptContent, error) {
		if trashID != "trash-1" {
			t.Errorf("expected trash-1, got %s", trashID)
		}
		return &domain.ManuscriptContent{WordCount: 20}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/sections/3/trash", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("trash: expected status 200, got %d", rr.Code)
	}

	rr = doRequest(server, "POST", "/api/v1/projects/proj-1/trash/trash-1/restore", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("restore: expected status 200, got %d", rr.Code)
	}
}

func TestRestoreUnknownTrashEntry(t *testing.T) {
	server, mocks := newTestServer()
	mocks.manuscript.restoreFn = func(ctx context.Context, userID, projectID, trashID string) (*domain.ManuscriptContent, error) {
		return nil, domain.ErrNotFound
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/trash/gone/restore", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestImportMarkdown(t *testing.T) {
	server, mocks := newTestServer()
	mocks.manuscript.importFn = func(ctx context.Context, userID, projectID, source string) (*domain.ManuscriptContent, error) {
		if source != "# Imported\n" {
			t.Errorf("unexpected source %q", source)
		}
		return &domain.ManuscriptContent{WordCount: 1}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/import",
		map[string]string{"markdown": "# Imported\n"})
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

// Binder and codex

func TestCreateBinderItem(t *testing.T) {
	server, mocks := newTestServer()
	mocks.binder.createFn = func(ctx context.Context, userID, projectID string, req driving.CreateBinderItemRequest) (*domain.BinderItem, error) {
		return &domain.BinderItem{ID: "item-1", Type: req.Type, Title: req.Title}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/binder",
		driving.CreateBinderItemRequest{Type: domain.BinderScene, Title: "Scene"})
	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
}

func TestMoveBinderItemRejectsBadParent(t *testing.T) {
	server, mocks := newTestServer()
	mocks.binder.moveFn = func(ctx context.Context, userID, projectID, itemID string, req driving.MoveBinderItemRequest) (*domain.BinderItem, error) {
		return nil, domain.ErrInvalidInput
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/binder/item-1/move",
		driving.MoveBinderItemRequest{ParentID: "scene-2"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestListCodexEntriesWithTypeFilter(t *testing.T) {
	server, mocks := newTestServer()
	var gotType domain.CodexEntryType
	mocks.codex.listEntriesFn = func(ctx context.Context, userID, projectID string, entryType domain.CodexEntryType) ([]*domain.CodexEntry, error) {
		gotType = entryType
		return []*domain.CodexEntry{}, nil
	}

	rr := doRequest(server, "GET", "/api/v1/projects/proj-1/codex?type=character", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotType != domain.CodexCharacter {
		t.Errorf("expected character filter, got %s", gotType)
	}
}

func TestCreateCodexRelation(t *testing.T) {
	server, mocks := newTestServer()
	mocks.codex.createRelationFn = func(ctx context.Context, userID, projectID string, req driving.CreateCodexRelationRequest) (*domain.CodexRelation, error) {
		return &domain.CodexRelation{ID: "rel-1", SourceID: req.SourceID, TargetID: req.TargetID}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/relations",
		driving.CreateCodexRelationRequest{SourceID: "e1", TargetID: "e2", Label: "rival"})
	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
}

// Proofreading and compile

func TestProofreadProject(t *testing.T) {
	server, mocks := newTestServer()
	mocks.proofread.proofreadProjectFn = func(ctx context.Context, userID, projectID string) (*driving.ProofreadReport, error) {
		return &driving.ProofreadReport{Summary: "問題なし", Model: "mock-model"}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/proofread", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var report driving.ProofreadReport
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Model != "mock-model" {
		t.Errorf("expected mock-model, got %s", report.Model)
	}
}

func TestProofreadMalformedResponseMapsTo502(t *testing.T) {
	server, mocks := newTestServer()
	mocks.proofread.proofreadProjectFn = func(ctx context.Context, userID, projectID string) (*driving.ProofreadReport, error) {
		return nil, domain.ErrMalformedResponse
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/proofread", nil)
	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rr.Code)
	}
}

func TestProofreadServiceUnavailableMapsTo503(t *testing.T) {
	server, mocks := newTestServer()
	mocks.proofread.proofreadTextFn = func(ctx context.Context, userID string, text string) (*domain.ProofreadingResult, error) {
		return nil, domain.ErrServiceUnavailable
	}

	rr := doRequest(server, "POST", "/api/v1/proofread", map[string]string{"text": "テスト"})
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
}

func TestCompileDownload(t *testing.T) {
	server, mocks := newTestServer()
	mocks.compile.compileFn = func(ctx context.Context, userID, projectID string, format driving.CompileFormat) (*driving.CompileResult, error) {
		if format != driving.CompileDocx {
			t.Errorf("expected docx format, got %s", format)
		}
		return &driving.CompileResult{
			Filename:    "novel.docx",
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Data:        []byte("binary"),
		}, nil
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/compile",
		map[string]string{"format": "docx"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="novel.docx"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if rr.Body.String() != "binary" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestCompileUnknownFormat(t *testing.T) {
	server, mocks := newTestServer()
	mocks.compile.compileFn = func(ctx context.Context, userID, projectID string, format driving.CompileFormat) (*driving.CompileResult, error) {
		return nil, domain.ErrInvalidInput
	}

	rr := doRequest(server, "POST", "/api/v1/projects/proj-1/compile",
		map[string]string{"format": "pdf"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}
