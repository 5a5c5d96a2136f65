package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frencoae/upwork-responder/internal/ai"
	"github.com/frencoae/upwork-responder/internal/auth"
	"github.com/frencoae/upwork-responder/internal/jobs"
	"github.com/frencoae/upwork-responder/internal/models"
	"github.com/frencoae/upwork-responder/internal/proposal"
	"github.com/frencoae/upwork-responder/internal/settings"

	"go.uber.org/zap"
)

const validToken = "valid-session"

type stubIdentity struct {
	user       *models.User
	signUpErr  error
	loginErr   error
	currentErr error
}

func (s *stubIdentity) SignUp(_ context.Context, email, _, name, companyName string) (*models.User, string, error) {
	if s.signUpErr != nil {
		return nil, "", s.signUpErr
	}
	return &models.User{ID: 1, Email: email, Name: name, CompanyName: companyName}, validToken, nil
}

func (s *stubIdentity) Login(_ context.Context, email, _ string) (*models.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &models.User{ID: 1, Email: email}, validToken, nil
}

func (s *stubIdentity) CurrentUser(_ context.Context, token string) (*models.User, error) {
	if s.currentErr != nil {
		return nil, s.currentErr
	}
	if token == validToken {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubIdentity) Logout(_ context.Context, _ string) error { return nil }
func (s *stubIdentity) SessionTTL() time.Duration                { return time.Hour }

type stubProposalStore struct {
	upserted   []*models.Proposal
	upsertErr  error
	isUpdate   bool
	sentErr    error
	sentCalls  int
	edits      []*models.ProposalEdit
	editErr    error
	listResult []models.Proposal
	listErr    error
}

func (s *stubProposalStore) UpsertProposal(_ context.Context, p *models.Proposal) (int64, bool, error) {
	if s.upsertErr != nil {
		return 0, false, s.upsertErr
	}
	s.upserted = append(s.upserted, p)
	return 42, s.isUpdate, nil
}

func (s *stubProposalStore) MarkProposalSent(_ context.Context, _ int64, _, _, _, _ string) (int64, bool, error) {
	if s.sentErr != nil {
		return 0, false, s.sentErr
	}
	s.sentCalls++
	return 42, s.isUpdate, nil
}

func (s *stubProposalStore) ListProposals(_ context.Context, _ int64) ([]models.Proposal, error) {
	return s.listResult, s.listErr
}

func (s *stubProposalStore) InsertProposalEdit(_ context.Context, edit *models.ProposalEdit) error {
	if s.editErr != nil {
		return s.editErr
	}
	s.edits = append(s.edits, edit)
	return nil
}

type stubUserStore struct {
	user *models.User
}

func (s *stubUserStore) GetUserByID(_ context.Context, _ int64) (*models.User, error) {
	return s.user, nil
}
func (s *stubUserStore) UpdateProfile(_ context.Context, _ int64, name, companyName string) error {
	s.user.Name = name
	s.user.CompanyName = companyName
	return nil
}
func (s *stubUserStore) UpdateTimezone(_ context.Context, _ int64, tz string) error {
	s.user.Timezone = tz
	return nil
}
func (s *stubUserStore) UpdateProfilePhoto(_ context.Context, _ int64, photo string) error {
	s.user.ProfilePhoto = &photo
	return nil
}

type stubSettingsStore struct {
	stored  *models.StoredSettings
	saveErr error
}

func (s *stubSettingsStore) GetPromptSettings(_ context.Context, _ int64) (*models.StoredSettings, error) {
	return s.stored, nil
}
func (s *stubSettingsStore) SavePromptSettings(_ context.Context, _ int64, _ models.PromptSettings) error {
	return s.saveErr
}

type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Complete(_ context.Context, _ ai.Request) (string, error) {
	return p.text, p.err
}

type testEnv struct {
	server    *Server
	identity  *stubIdentity
	proposals *stubProposalStore
	provider  *stubProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	identity := &stubIdentity{user: &models.User{ID: 1, Email: "sam@example.com", Name: "Sam"}}
	proposals := &stubProposalStore{}
	provider := &stubProvider{text: "Here is your tailored proposal."}
	logger := zap.NewNop()

	srv := New(":0", Deps{
		Auth:      identity,
		Proposals: proposals,
		Users:     &stubUserStore{user: identity.user},
		Resolver:  settings.NewResolver(&stubSettingsStore{}, logger),
		Generator: proposal.NewGenerator(provider, time.Second, logger),
		Tagger:    proposal.NewRuleTagger(),
		Catalog:   jobs.NewMockCatalog(),
		UploadDir: t.TempDir(),
	}, logger)

	return &testEnv{server: srv, identity: identity, proposals: proposals, provider: provider}
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: validToken})
	}

	rec := httptest.NewRecorder()
	e.server.http.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestRequireAuthRejectsMissingSession(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/proposals/generate"},
		{http.MethodPost, "/api/proposals/save"},
		{http.MethodPost, "/api/proposals/send"},
		{http.MethodGet, "/api/proposals"},
		{http.MethodGet, "/api/prompts"},
		{http.MethodPost, "/api/prompts"},
		{http.MethodGet, "/api/jobs"},
	} {
		rec := env.do(route.method, route.path, "{}", false)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without session = %d, want 401", route.method, route.path, rec.Code)
		}
	}
}

func TestGenerateRequiresJobDescription(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/proposals/generate", `{"jobId":"job_001"}`, true)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Job description is required" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGenerateSuccessPersistsDraft(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/proposals/generate",
		`{"jobId":"job_001","jobTitle":"Logo Design","jobDescription":"Need a logo","skills":["Branding"]}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["proposal"] != "Here is your tailored proposal." {
		t.Errorf("proposal = %q", body["proposal"])
	}

	details := body["details"].(map[string]interface{})
	if details["model"] != "gpt-4" {
		t.Errorf("model = %v", details["model"])
	}
	if details["temperature"] != 0.3 {
		t.Errorf("temperature = %v", details["temperature"])
	}

	if len(env.proposals.upserted) != 1 {
		t.Fatalf("expected one persisted draft, got %d", len(env.proposals.upserted))
	}
	saved := env.proposals.upserted[0]
	if saved.Status != "generated" {
		t.Errorf("persisted status = %q", saved.Status)
	}
	if saved.JobID != "job_001" {
		t.Errorf("persisted job id = %q", saved.JobID)
	}
}

func TestGenerateFallbackSkipsPersistence(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = errors.New("provider down")

	rec := env.do(http.MethodPost, "/api/proposals/generate",
		`{"jobId":"job_001","jobTitle":"Logo Design","jobDescription":"Need a logo","clientInfo":{"name":"Jane"}}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("fallback must still report success")
	}

	details := body["details"].(map[string]interface{})
	if details["model"] != proposal.FallbackModel {
		t.Errorf("model = %v, want fallback", details["model"])
	}
	if details["temperature"] != 0.0 {
		t.Errorf("temperature = %v, want 0", details["temperature"])
	}

	text := body["proposal"].(string)
	if !strings.HasPrefix(text, "Dear Jane,") {
		t.Errorf("fallback text must greet the client: %q", text[:30])
	}
	if !strings.HasSuffix(text, "Sam") {
		t.Error("fallback text must end with the freelancer's name")
	}

	if len(env.proposals.upserted) != 0 {
		t.Error("fallback draft must not be persisted")
	}
}

func TestSaveValidatesRequiredFields(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"jobId":"job_001"}`,
		`{"proposalText":"text"}`,
		`{}`,
	} {
		rec := env.do(http.MethodPost, "/api/proposals/save", body, true)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("save %s = %d, want 400", body, rec.Code)
		}
		if resp := decodeBody(t, rec); resp["error"] != "Proposal text and Job ID are required" {
			t.Errorf("error = %q", resp["error"])
		}
	}
}

func TestSaveRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/proposals/save",
		`{"jobId":"job_001","proposalText":"text","status":"archived"}`, true)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSaveAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/proposals/save",
		`{"jobId":"job_001","jobTitle":"Logo","proposalText":"my text"}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true || body["isUpdate"] != false {
		t.Errorf("body = %v", body)
	}
	if body["proposalId"] != 42.0 {
		t.Errorf("proposalId = %v", body["proposalId"])
	}

	saved := env.proposals.upserted[0]
	if saved.Status != "saved" {
		t.Errorf("default status = %q", saved.Status)
	}
	if saved.Budget != "Not specified" {
		t.Errorf("default budget = %q", saved.Budget)
	}
	if saved.Skills == nil {
		t.Error("skills must default to an empty list")
	}
	if string(saved.ClientInfo) != `{}` {
		t.Errorf("default client info = %s", saved.ClientInfo)
	}
}

func TestSaveSurfacesStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.proposals.upsertErr = errors.New("deadlock detected")

	rec := env.do(http.MethodPost, "/api/proposals/save",
		`{"jobId":"job_001","proposalText":"text"}`, true)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Error("expected success false")
	}
	errMsg, _ := body["error"].(string)
	if !strings.HasPrefix(errMsg, "Failed to save proposal:") {
		t.Errorf("error = %q", errMsg)
	}
}

func TestSendRecordsTrainingOnEdit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/proposals/send",
		`{"jobId":"job_001","jobTitle":"Logo","proposalText":"edited with my portfolio","originalProposal":"original draft"}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["trained"] != true {
		t.Error("differing texts must set trained")
	}

	if len(env.proposals.edits) != 1 {
		t.Fatalf("expected one edit record, got %d", len(env.proposals.edits))
	}
	edit := env.proposals.edits[0]
	if edit.EditReason != "User improvements" {
		t.Errorf("default edit reason = %q", edit.EditReason)
	}
	if len(edit.LearnedPatterns) == 0 {
		t.Error("expected learned patterns for the edit")
	}
}

func TestSendSkipsTrainingWhenUnchanged(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/proposals/send",
		`{"jobId":"job_001","proposalText":"same text","originalProposal":"same text"}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["trained"] != false {
		t.Error("identical texts must not set trained")
	}
	if len(env.proposals.edits) != 0 {
		t.Error("identical texts must not record an edit")
	}
}

func TestSendSurfacesStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.proposals.sentErr = errors.New("connection reset")

	rec := env.do(http.MethodPost, "/api/proposals/send",
		`{"jobId":"job_001","proposalText":"text"}`, true)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	body := decodeBody(t, rec)
	errMsg, _ := body["error"].(string)
	if !strings.HasPrefix(errMsg, "Failed to send proposal:") {
		t.Errorf("error = %q", errMsg)
	}
}

func TestGetPromptsReturnsDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/prompts", "", true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decodeBody(t, rec)
	settingsBody := body["settings"].(map[string]interface{})
	basicInfo := settingsBody["basicInfo"].(map[string]interface{})
	if basicInfo["feedName"] != "Your Professional Feed" {
		t.Errorf("feedName = %v", basicInfo["feedName"])
	}
}

func TestSavePromptsMasksFailure(t *testing.T) {
	identity := &stubIdentity{user: &models.User{ID: 1, Name: "Sam"}}
	logger := zap.NewNop()

	srv := New(":0", Deps{
		Auth:      identity,
		Proposals: &stubProposalStore{},
		Users:     &stubUserStore{user: identity.user},
		Resolver:  settings.NewResolver(&stubSettingsStore{saveErr: errors.New("disk full")}, logger),
		Generator: proposal.NewGenerator(&stubProvider{}, time.Second, logger),
		Tagger:    proposal.NewRuleTagger(),
		Catalog:   jobs.NewMockCatalog(),
	}, logger)
	env := &testEnv{server: srv, identity: identity}

	rec := env.do(http.MethodPost, "/api/prompts",
		`{"settings":{"basicInfo":{"feedName":"Mine"}}}`, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite store failure", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != true {
		t.Error("settings save must mask persistence failures")
	}
}

func TestListJobsFiltersByProfileKeywords(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/jobs", "", true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decodeBody(t, rec)
	jobsList := body["jobs"].([]interface{})
	if len(jobsList) == 0 {
		t.Fatal("expected jobs matching the default keyword expression")
	}

	// Default keywords cover web development terms, so the tactile design
	// job must be filtered out.
	for _, raw := range jobsList {
		job := raw.(map[string]interface{})
		if job["id"] == "job_001" {
			t.Error("keyword filter must exclude non-matching jobs")
		}
	}
}

func TestAuthSignupSingleUserConflict(t *testing.T) {
	env := newTestEnv(t)
	env.identity.signUpErr = auth.ErrSingleUser

	rec := env.do(http.MethodPost, "/api/auth",
		`{"action":"signup","email":"two@example.com","password":"pw","name":"Two"}`, false)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAuthLoginSetsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth",
		`{"action":"login","email":"sam@example.com","password":"pw"}`, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("login must set the session cookie")
	}
	if sessionCookie.Value != validToken || !sessionCookie.HttpOnly {
		t.Errorf("cookie = %+v", sessionCookie)
	}
}

func TestAuthInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.identity.loginErr = auth.ErrInvalidCredentials

	rec := env.do(http.MethodPost, "/api/auth",
		`{"action":"login","email":"sam@example.com","password":"wrong"}`, false)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAuthMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth", `{"action":"login","email":"sam@example.com"}`, false)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Email and password are required" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestCurrentUserEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/auth", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["email"] != "sam@example.com" {
		t.Errorf("email = %v", body["email"])
	}

	rec = env.do(http.MethodGet, "/api/auth", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}
}
