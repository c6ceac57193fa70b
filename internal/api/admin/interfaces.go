package admin

import (
	"context"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

type ConfigRefresher interface {
	Refresh(ctx context.Context) (*entity.ConfigSnapshot, error)
}
