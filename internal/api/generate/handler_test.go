package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/formatter"
)

type fakeUsecase struct {
	resp      *entity.GenerateResponse
	err       error
	asyncID   string
	lastReq   *entity.GenerateRequest
	lastAsync *entity.AsyncGenerateRequest
}

func (f *fakeUsecase) Generate(_ context.Context, req *entity.GenerateRequest) (*entity.GenerateResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func (f *fakeUsecase) GenerateAsync(_ context.Context, req *entity.AsyncGenerateRequest) (string, error) {
	f.lastAsync = req
	return f.asyncID, f.err
}

func newTestRouter(uc GenerateUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, formatter.NewFactory()))
	return r
}

func do(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleResponse() *entity.GenerateResponse {
	return &entity.GenerateResponse{
		Description: "Galaxy S25 description",
		Timestamps:  "0:00 Intro",
		Hashtags:    []string{"#GalaxyS25"},
		FAQ:         "Q: a?\nA: b.",
		Breakdown:   &entity.GenerationBreakdown{GenerationID: "gen-1", Mode: entity.GenerationModeMock},
	}
}

func TestGenerate_JSON(t *testing.T) {
	uc := &fakeUsecase{resp: sampleResponse()}
	rec := do(t, newTestRouter(uc), "/generate", `{"productName":"Galaxy S25","srtContent":"hello","keywords":["camera"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Galaxy S25 description", got.Description)
	require.NotNil(t, got.Breakdown)
	assert.Equal(t, entity.GenerationModeMock, got.Breakdown.Mode)

	assert.Equal(t, "Galaxy S25", uc.lastReq.ProductName)
	assert.Equal(t, []string{"camera"}, uc.lastReq.Keywords)
}

func TestGenerate_ValidationError(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("%w: productName", entity.ErrMissingField)}
	rec := do(t, newTestRouter(uc), "/generate", `{"srtContent":"hello"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body.Error)
	assert.Contains(t, body.Message, "productName")
}

func TestGenerate_InternalError(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("unexpected")}
	rec := do(t, newTestRouter(uc), "/generate", `{"productName":"x","srtContent":"y"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerate_BadBody(t *testing.T) {
	rec := do(t, newTestRouter(&fakeUsecase{}), "/generate", `{"productName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	uc := &fakeUsecase{resp: sampleResponse()}
	rec := do(t, newTestRouter(uc), "/generate?format=xml", `{"productName":"x","srtContent":"y"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestGenerate_MarkdownAttachment(t *testing.T) {
	uc := &fakeUsecase{resp: sampleResponse()}
	rec := do(t, newTestRouter(uc), "/generate?format=markdown", `{"productName":"Galaxy S25","srtContent":"y"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="galaxy-s25.md"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "# Galaxy S25")
	assert.Contains(t, rec.Body.String(), "Galaxy S25 description")
}

func TestGenerateAsync(t *testing.T) {
	uc := &fakeUsecase{asyncID: "gen-42"}
	rec := do(t, newTestRouter(uc), "/generate/async", `{"productName":"x","srtContent":"y","callback_url":"https://example.com/hook"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var body acceptedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "gen-42", body.GenerationID)
	assert.Equal(t, "accepted", body.Status)
	assert.Equal(t, "https://example.com/hook", uc.lastAsync.CallbackURL)
	assert.Equal(t, "x", uc.lastAsync.ProductName)
}

func TestGenerateAsync_ValidationError(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("%w: callback_url", entity.ErrMissingField)}
	rec := do(t, newTestRouter(uc), "/generate/async", `{"productName":"x","srtContent":"y"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToFilename(t *testing.T) {
	assert.Equal(t, "galaxy-s25-ultra.pdf", toFilename(" Galaxy S25 Ultra! ", ".pdf"))
	assert.Equal(t, "갤럭시-s25.md", toFilename("갤럭시 S25", ".md"))
	assert.Equal(t, "content.docx", toFilename("!!!", ".docx"))
}
