package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

func ptr(s string) *string { return &s }

func TestMergeDraft(t *testing.T) {
	base := entity.GenerateResponse{
		Description: "base description",
		Timestamps:  "0:00 Intro",
		Hashtags:    []string{"#Base"},
		FAQ:         "Q: base?\nA: base.",
	}

	tests := []struct {
		name  string
		patch *entity.ResponsePatch
		want  entity.GenerateResponse
	}{
		{
			name:  "nil patch",
			patch: nil,
			want:  base,
		},
		{
			name:  "missing hashtags keep base",
			patch: &entity.ResponsePatch{Description: ptr("new description")},
			want: entity.GenerateResponse{
				Description: "new description",
				Timestamps:  "0:00 Intro",
				Hashtags:    []string{"#Base"},
				FAQ:         "Q: base?\nA: base.",
			},
		},
		{
			name: "blank values keep base",
			patch: &entity.ResponsePatch{
				Description: ptr("   "),
				Timestamps:  ptr(""),
				Hashtags:    []string{"", " "},
				FAQ:         ptr("\n"),
			},
			want: base,
		},
		{
			name: "full patch replaces everything",
			patch: &entity.ResponsePatch{
				Description: ptr("d"),
				Timestamps:  ptr("0:00 t"),
				Hashtags:    []string{"#A", "", "#B"},
				FAQ:         ptr("Q: q?\nA: a."),
			},
			want: entity.GenerateResponse{
				Description: "d",
				Timestamps:  "0:00 t",
				Hashtags:    []string{"#A", "#B"},
				FAQ:         "Q: q?\nA: a.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeDraft(base, tt.patch)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, MergeDraft(got, nil), got)
		})
	}
}

func TestMergeDraft_DoesNotAliasBase(t *testing.T) {
	base := entity.GenerateResponse{Hashtags: []string{"#Base"}}

	got := MergeDraft(base, nil)
	got.Hashtags[0] = "#Changed"

	assert.Equal(t, "#Base", base.Hashtags[0])
}
