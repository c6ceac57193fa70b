package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, http.StatusBadRequest, "productName is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body.Error)
	assert.Equal(t, "productName is required", body.Message)
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()

	Attachment(rec, "text/markdown; charset=utf-8", "galaxy.md", []byte("# Galaxy"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="galaxy.md"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, "# Galaxy", rec.Body.String())
}

func TestAttachment_NonASCIIFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "ascii",
			filename: "galaxy-s25.pdf",
			want:     `attachment; filename="galaxy-s25.pdf"`,
		},
		{
			name:     "korean",
			filename: "갤럭시-s25.pdf",
			want:     `attachment; filename="_________-s25.pdf"; filename*=UTF-8''%EA%B0%A4%EB%9F%AD%EC%8B%9C-s25.pdf`,
		},
		{
			name:     "quote",
			filename: `a"b.md`,
			want:     `attachment; filename="a_b.md"; filename*=UTF-8''a%22b.md`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			Attachment(rec, "application/pdf", tt.filename, []byte("%PDF"))

			assert.Equal(t, tt.want, rec.Header().Get("Content-Disposition"))
		})
	}
}
