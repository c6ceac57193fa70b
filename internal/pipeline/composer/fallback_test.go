package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

func TestFallback(t *testing.T) {
	req := &entity.GenerateRequest{
		ProductName: "Model X",
		SRTContent:  "transcript",
		Keywords:    []string{"battery", "camera"},
		BriefUSPs:   []string{"fast charging"},
	}

	resp := Fallback(req)

	assert.Contains(t, resp.Description, "Model X")
	assert.Contains(t, resp.Description, "fast charging")
	assert.Contains(t, resp.Hashtags, "#ModelX")
	assert.Contains(t, resp.Hashtags, "#battery")
	assert.Contains(t, resp.Hashtags, "#camera")
	for _, tag := range resp.Hashtags {
		assert.True(t, strings.HasPrefix(tag, "#"))
	}
	assert.GreaterOrEqual(t, strings.Count(resp.FAQ, "Q: "), 3)
	assert.Equal(t, strings.Count(resp.FAQ, "Q: "), strings.Count(resp.FAQ, "A: "))
	assert.NotEmpty(t, resp.Timestamps)

	assert.Equal(t, resp, Fallback(req))
}

func TestFallback_NoKeywords(t *testing.T) {
	resp := Fallback(&entity.GenerateRequest{ProductName: "Galaxy Buds"})

	assert.Contains(t, resp.Description, "Galaxy Buds")
	assert.Equal(t, "#GalaxyBuds", resp.Hashtags[0])
	assert.GreaterOrEqual(t, strings.Count(resp.FAQ, "Q: "), 3)
}

func TestFallback_DuplicateTagsDropped(t *testing.T) {
	resp := Fallback(&entity.GenerateRequest{ProductName: "Review", Keywords: []string{"review", "!!"}})

	assert.Equal(t, "#Review", resp.Hashtags[0])
	count := 0
	for _, tag := range resp.Hashtags {
		if strings.EqualFold(tag, "#review") {
			count++
		}
		assert.NotEqual(t, "#", tag)
	}
	assert.Equal(t, 1, count)
}

func TestHashtag(t *testing.T) {
	assert.Equal(t, "GalaxyS25Ultra", Hashtag("Galaxy S25 Ultra"))
	assert.Equal(t, "갤럭시AI", Hashtag("갤럭시 AI"))
	assert.Equal(t, "", Hashtag("!!"))
}
