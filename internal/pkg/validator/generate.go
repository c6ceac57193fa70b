package validator

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// Validator checks and normalizes generation requests
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerate trims the request in place and rejects it when a required
// field is missing or a value is malformed.
func (v *Validator) ValidateGenerate(req *entity.GenerateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request body", entity.ErrMissingField)
	}

	req.ProductName = strings.TrimSpace(req.ProductName)
	req.SRTContent = strings.TrimSpace(req.SRTContent)
	req.ProductCategory = strings.TrimSpace(req.ProductCategory)
	req.LaunchDate = strings.TrimSpace(req.LaunchDate)

	if req.ProductName == "" {
		return fmt.Errorf("%w: productName", entity.ErrMissingField)
	}
	if req.SRTContent == "" {
		return fmt.Errorf("%w: srtContent", entity.ErrMissingField)
	}

	if req.LaunchDate != "" {
		if _, err := time.Parse(time.DateOnly, req.LaunchDate); err != nil {
			return fmt.Errorf("%w: launchDate must be YYYY-MM-DD, got %q", entity.ErrInvalidFormat, req.LaunchDate)
		}
	}

	req.Keywords = CleanList(req.Keywords)
	req.BriefUSPs = CleanList(req.BriefUSPs)
	req.GroundingKeywords = CleanList(req.GroundingKeywords)

	return nil
}

// ValidateGenerateAsync additionally requires an absolute http(s) callback URL.
func (v *Validator) ValidateGenerateAsync(req *entity.AsyncGenerateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request body", entity.ErrMissingField)
	}

	req.CallbackURL = strings.TrimSpace(req.CallbackURL)
	if req.CallbackURL == "" {
		return fmt.Errorf("%w: callback_url", entity.ErrMissingField)
	}

	u, err := url.Parse(req.CallbackURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: callback_url must be an absolute http(s) URL", entity.ErrInvalidFormat)
	}

	return v.ValidateGenerate(&req.GenerateRequest)
}

// CleanList trims values, drops empties and removes case-insensitive
// duplicates, keeping the first spelling.
func CleanList(values []string) []string {
	if values == nil {
		return nil
	}

	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
