package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/logger"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/response"
)

const maxBodyBytes = 2 << 20

type Handler struct {
	usecase    GenerateUsecase
	formatters FormatterFactory
}

func NewHandler(usecase GenerateUsecase, formatters FormatterFactory) *Handler {
	return &Handler{
		usecase:    usecase,
		formatters: formatters,
	}
}

// Generate handles POST /generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Generate")

	format, err := parseFormat(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	var req entity.GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	resp, err := h.usecase.Generate(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if format == entity.FormatJSON {
		response.Success(w, resp)
		return
	}

	f, err := h.formatters.Create(format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	data, err := f.Format(req.ProductName, resp)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render document", err)
		return
	}

	ctxzap.Info(ctx, "content exported", zap.String("format", string(format)), zap.Int("bytes", len(data)))
	response.Attachment(w, f.ContentType(), toFilename(req.ProductName, f.FileExtension()), data)
}

// GenerateAsync handles POST /generate/async
func (h *Handler) GenerateAsync(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateAsync")

	var req entity.AsyncGenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	generationID, err := h.usecase.GenerateAsync(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "async generation accepted",
		zap.String("generation_id", generationID),
		zap.String("callback_url", req.CallbackURL),
	)

	response.Accepted(w, acceptedResponse{
		Status:       "accepted",
		GenerationID: generationID,
	})
}

func parseFormat(r *http.Request) (entity.ResultFormat, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return entity.FormatJSON, nil
	}
	format := entity.ResultFormat(raw)
	if !format.IsValid() {
		return "", fmt.Errorf("%w: format must be one of json, markdown, docx, pdf", entity.ErrInvalidParameter)
	}
	return format, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Warn(ctx, message, zap.Int("status", status), zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrInvalidParameter) {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	} else {
		ctxzap.Error(ctx, "unexpected generation error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
