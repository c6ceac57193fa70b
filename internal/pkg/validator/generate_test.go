package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

func TestValidateGenerate(t *testing.T) {
	tests := []struct {
		name    string
		req     *entity.GenerateRequest
		wantErr error
	}{
		{name: "nil request", req: nil, wantErr: entity.ErrMissingField},
		{name: "missing product", req: &entity.GenerateRequest{SRTContent: "x"}, wantErr: entity.ErrMissingField},
		{name: "blank product", req: &entity.GenerateRequest{ProductName: "  ", SRTContent: "x"}, wantErr: entity.ErrMissingField},
		{name: "missing transcript", req: &entity.GenerateRequest{ProductName: "Galaxy"}, wantErr: entity.ErrMissingField},
		{name: "bad launch date", req: &entity.GenerateRequest{ProductName: "Galaxy", SRTContent: "x", LaunchDate: "02/01/2025"}, wantErr: entity.ErrInvalidFormat},
		{name: "valid", req: &entity.GenerateRequest{ProductName: "Galaxy", SRTContent: "x", LaunchDate: "2025-02-01"}},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateGenerate(tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateGenerate_Normalizes(t *testing.T) {
	req := &entity.GenerateRequest{
		ProductName: "  Galaxy S25 ",
		SRTContent:  "\ntranscript\n",
		Keywords:    []string{" Camera", "camera", "", "Battery ", "  "},
		BriefUSPs:   []string{"fast charging"},
	}

	require.NoError(t, NewValidator().ValidateGenerate(req))

	assert.Equal(t, "Galaxy S25", req.ProductName)
	assert.Equal(t, "transcript", req.SRTContent)
	assert.Equal(t, []string{"Camera", "Battery"}, req.Keywords)
	assert.Equal(t, []string{"fast charging"}, req.BriefUSPs)
	assert.Nil(t, req.GroundingKeywords)
}

func TestValidateGenerateAsync(t *testing.T) {
	base := entity.GenerateRequest{ProductName: "Galaxy", SRTContent: "x"}
	v := NewValidator()

	err := v.ValidateGenerateAsync(&entity.AsyncGenerateRequest{GenerateRequest: base})
	assert.ErrorIs(t, err, entity.ErrMissingField)

	err = v.ValidateGenerateAsync(&entity.AsyncGenerateRequest{GenerateRequest: base, CallbackURL: "ftp://example.com/hook"})
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)

	err = v.ValidateGenerateAsync(&entity.AsyncGenerateRequest{GenerateRequest: base, CallbackURL: "/relative"})
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)

	err = v.ValidateGenerateAsync(&entity.AsyncGenerateRequest{GenerateRequest: base, CallbackURL: " https://example.com/hook "})
	assert.NoError(t, err)

	err = v.ValidateGenerateAsync(&entity.AsyncGenerateRequest{CallbackURL: "https://example.com/hook"})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}
