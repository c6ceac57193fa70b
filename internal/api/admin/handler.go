package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/logger"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/response"
)

type refreshResponse struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
}

type Handler struct {
	configs ConfigRefresher
}

func NewHandler(configs ConfigRefresher) *Handler {
	return &Handler{configs: configs}
}

// RefreshConfig handles POST /admin/config/refresh
func (h *Handler) RefreshConfig(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RefreshConfig")

	snap, err := h.configs.Refresh(ctx)
	if err != nil {
		ctxzap.Error(ctx, "failed to refresh config snapshot", zap.Error(err))
		if errors.Is(err, entity.ErrConfigUnavailable) {
			response.Error(w, http.StatusServiceUnavailable, "configuration store unavailable")
			return
		}
		response.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response.Success(w, refreshResponse{
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
	})
}
