package llm

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// MockConnector answers with canned, schema-valid JSON.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	name := ""
	if req.Schema != nil {
		name = req.Schema.Name
	}
	ctxzap.Info(ctx, "[MOCK] completion", zap.String("schema", name))

	switch name {
	case entity.SchemaContentCritique:
		return `{"overallScore":88,"brandVoiceScore":86,"keywordIntegration":90,"geoOptimization":85,"faqQuality":87,"issues":[],"suggestions":["Keep the FAQ answers concise"]}`, nil
	default:
		return "```json\n" + `{
  "description": "A closer look at the product featured in this video: what it does, how it feels in daily use and why its standout features matter. Watch the full walkthrough for design details, real-world performance and practical tips, then check the FAQ below for quick answers to the most common questions.",
  "timestamps": "0:00 Introduction\n0:30 Design overview\n1:15 Key features\n2:30 Real-world use\n3:45 Final thoughts",
  "hashtags": ["#Review", "#Unboxing", "#Tech", "#NewProduct", "#Gadget", "#리뷰", "#언박싱", "#신제품", "#테크", "#추천"],
  "faq": "Q: What is shown in this video?\nA: A full walkthrough of the product and its key features.\n\nQ: Who is this product for?\nA: Anyone who wants reliable everyday performance.\n\nQ: Where can I learn more?\nA: Check the official product page for specifications."
}` + "\n```", nil
	}
}
