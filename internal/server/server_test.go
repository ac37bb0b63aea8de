package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxaris/luxaris/internal/core"
	"github.com/luxaris/luxaris/internal/domain"
	aimock "github.com/luxaris/luxaris/internal/plugins/ai/mock"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Minimal store fakes: handler tests only exercise routing, binding and the
// failure-to-status mapping; workflow behavior is covered in core.

type tplStore struct {
	templates map[uuid.UUID]*pgdb.Template
}

func (s *tplStore) Create(_ context.Context, template *pgdb.Template) error {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	s.templates[template.ID] = template
	return nil
}

func (s *tplStore) Get(_ context.Context, id uuid.UUID) (*pgdb.Template, error) {
	return s.templates[id], nil
}

func (s *tplStore) Update(_ context.Context, template *pgdb.Template) error {
	s.templates[template.ID] = template
	return nil
}

func (s *tplStore) List(context.Context, uuid.UUID, int, int) ([]pgdb.Template, int64, error) {
	return nil, 0, nil
}

func (s *tplStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.templates, id)
	return nil
}

type emptySessionStore struct{}

func (emptySessionStore) Create(context.Context, *pgdb.Session) error { return nil }
func (emptySessionStore) Get(context.Context, uuid.UUID) (*pgdb.Session, error) {
	return nil, nil
}
func (emptySessionStore) SetStatus(context.Context, uuid.UUID, string) error { return nil }
func (emptySessionStore) List(context.Context, uuid.UUID, domain.SessionFilter) ([]pgdb.Session, int64, error) {
	return nil, 0, nil
}
func (emptySessionStore) SoftDelete(context.Context, uuid.UUID) error { return nil }

type emptySuggestionStore struct{}

func (emptySuggestionStore) CreateBatch(context.Context, []*pgdb.Suggestion) error { return nil }
func (emptySuggestionStore) Get(context.Context, uuid.UUID) (*pgdb.Suggestion, error) {
	return nil, nil
}
func (emptySuggestionStore) ListBySession(context.Context, uuid.UUID) ([]pgdb.Suggestion, error) {
	return nil, nil
}
func (emptySuggestionStore) MarkAccepted(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}
func (emptySuggestionStore) SoftDeleteBySession(context.Context, uuid.UUID) error { return nil }

func newTestRouter(templates *tplStore) *gin.Engine {
	deps := Deps{
		Orchestrator: core.NewOrchestrator(
			emptySessionStore{}, emptySuggestionStore{}, templates, nil, nil, nil, aimock.NewClient(),
		),
		Acceptor:  core.NewAcceptor(emptySessionStore{}, emptySuggestionStore{}, nil, nil, nil),
		Sessions:  core.NewSessionService(emptySessionStore{}, emptySuggestionStore{}),
		Templates: core.NewTemplateService(templates),
	}
	return New(deps)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, principal, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("{}")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != "" {
		req.Header.Set("X-Principal-ID", principal)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&tplStore{templates: map[uuid.UUID]*pgdb.Template{}})
	w := doRequest(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePrincipal(t *testing.T) {
	router := newTestRouter(&tplStore{templates: map[uuid.UUID]*pgdb.Template{}})

	w := doRequest(t, router, http.MethodPost, "/api/generate", "", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/generate", "not-a-uuid", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateValidationStatuses(t *testing.T) {
	router := newTestRouter(&tplStore{templates: map[uuid.UUID]*pgdb.Template{}})
	principal := uuid.New().String()

	w := doRequest(t, router, http.MethodPost, "/api/generate", principal, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodePromptRequired, errorCode(t, w))

	w = doRequest(t, router, http.MethodPost, "/api/generate", principal, `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeChannelIDsRequired, errorCode(t, w))
}

func TestSessionNotFoundStatus(t *testing.T) {
	router := newTestRouter(&tplStore{templates: map[uuid.UUID]*pgdb.Template{}})
	principal := uuid.New().String()

	w := doRequest(t, router, http.MethodGet, "/api/sessions/"+uuid.NewString(), principal, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.CodeSessionNotFound, errorCode(t, w))
}

func TestTemplateLifecycleOverHTTP(t *testing.T) {
	store := &tplStore{templates: map[uuid.UUID]*pgdb.Template{}}
	router := newTestRouter(store)
	principal := uuid.New().String()

	w := doRequest(t, router, http.MethodPost, "/api/templates", principal,
		`{"name":"welcome","template_body":"Hello {{name}}, welcome to {{product}}!"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created pgdb.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(t, router, http.MethodPost, "/api/templates/"+created.ID.String()+"/render", principal,
		`{"values":{"name":"John","product":"Luxaris"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var rendered struct {
		RenderedContent  string   `json:"rendered_content"`
		PlaceholdersUsed []string `json:"placeholders_used"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rendered))
	assert.Equal(t, "Hello John, welcome to Luxaris!", rendered.RenderedContent)
	assert.Equal(t, []string{"name", "product"}, rendered.PlaceholdersUsed)

	w = doRequest(t, router, http.MethodPost, "/api/templates/"+created.ID.String()+"/render", principal,
		`{"values":{"name":"John"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeMissingPlaceholderValues, errorCode(t, w))

	w = doRequest(t, router, http.MethodPost, "/api/templates", principal, `{"name":"","template_body":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeTemplateNameAndBodyRequired, errorCode(t, w))

	w = doRequest(t, router, http.MethodDelete, "/api/templates/"+created.ID.String(), principal, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
