package generate

import (
	"context"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/formatter"
)

type GenerateUsecase interface {
	Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.GenerateResponse, error)
	GenerateAsync(ctx context.Context, req *entity.AsyncGenerateRequest) (string, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
