// Package jsonrepair extracts JSON objects from free-text model output.
//
// Repairs are purely textual: a decoded value is well-formed JSON but may be
// missing fields, so callers validate the fields they need themselves.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

// Strategy names, in the order they are attempted.
const (
	StrategyDirect        = "direct"
	StrategyTruncation    = "truncation"
	StrategyExtract       = "extract"
	StrategyControlEscape = "control_escape"
)

var (
	fenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)\\s*```")
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// MalformedOutputError is returned when every repair strategy failed.
type MalformedOutputError struct {
	Tried   []string
	LastErr error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: tried %s: %v", entity.ErrMalformedOutput, strings.Join(e.Tried, ", "), e.LastErr)
}

func (e *MalformedOutputError) Is(target error) bool {
	return target == entity.ErrMalformedOutput
}

func (e *MalformedOutputError) Unwrap() error {
	return e.LastErr
}

// Result reports which strategy produced the value.
type Result[T any] struct {
	Value    T
	Strategy string
}

// Decode parses raw into T, repairing fences, truncation and raw control
// characters on the way. It fails only after all strategies are exhausted.
func Decode[T any](raw string) (T, error) {
	res, err := DecodeWithStrategy[T](raw)
	return res.Value, err
}

// DecodeWithStrategy is Decode that also tells which strategy succeeded.
func DecodeWithStrategy[T any](raw string) (Result[T], error) {
	var lastErr error = errors.New("empty input")
	tried := make([]string, 0, 4)

	attempt := func(strategy string, candidates ...string) (Result[T], bool) {
		tried = append(tried, strategy)
		for _, c := range candidates {
			v, err := unmarshal[T](c)
			if err == nil {
				return Result[T]{Value: v, Strategy: strategy}, true
			}
			lastErr = err
		}
		return Result[T]{}, false
	}

	stripped := StripFences(raw)
	if stripped == "" {
		return Result[T]{}, &MalformedOutputError{Tried: []string{StrategyDirect}, LastErr: lastErr}
	}

	if r, ok := attempt(StrategyDirect, stripped); ok {
		return r, nil
	}

	if r, ok := attempt(StrategyTruncation, truncationCandidates(stripped)...); ok {
		return r, nil
	}

	span := objectRe.FindString(raw)
	if r, ok := attempt(StrategyExtract, span); ok {
		return r, nil
	}

	escaped := []string{EscapeControlChars(stripped)}
	if span != "" {
		escaped = append(escaped, EscapeControlChars(span))
	}
	candidates := append([]string{}, escaped...)
	for _, e := range escaped {
		candidates = append(candidates, truncationCandidates(e)...)
	}
	if r, ok := attempt(StrategyControlEscape, candidates...); ok {
		return r, nil
	}

	return Result[T]{}, &MalformedOutputError{Tried: tried, LastErr: lastErr}
}

func unmarshal[T any](candidate string) (T, error) {
	var out T
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return out, errors.New("empty candidate")
	}
	if candidate[0] != '{' && candidate[0] != '[' {
		return out, fmt.Errorf("candidate does not start with an object or array")
	}
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return out, err
	}
	return out, nil
}

// StripFences removes Markdown code-fence wrappers around the payload.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	// An opening fence whose closing fence was cut off.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
	}
	return strings.TrimSpace(s)
}

// EscapeControlChars escapes raw newlines, tabs and carriage returns that
// appear inside string literals.
func EscapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			case c == '\n':
				b.WriteString(`\n`)
				continue
			case c == '\r':
				b.WriteString(`\r`)
				continue
			case c == '\t':
				b.WriteString(`\t`)
				continue
			}
		} else if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}
