package jsonrepair

import "strings"

// cutPoint is a prefix length at which the document can be closed by
// appending the closers for stack.
type cutPoint struct {
	pos   int
	stack []byte
}

type scanResult struct {
	stack    []byte
	inString bool
	escaped  bool
	cuts     []cutPoint
}

// scan walks s from its first '{' or '[' tracking string state and the
// nesting stack, and records every position where a member boundary ends.
func scan(s string) scanResult {
	var r scanResult
	for i := 0; i < len(s); i++ {
		c := s[i]
		if r.inString {
			switch {
			case r.escaped:
				r.escaped = false
			case c == '\\':
				r.escaped = true
			case c == '"':
				r.inString = false
			}
			continue
		}
		switch c {
		case '"':
			r.inString = true
		case '{', '[':
			r.stack = append(r.stack, c)
			r.cuts = append(r.cuts, cutPoint{pos: i + 1, stack: cloneStack(r.stack)})
		case '}', ']':
			if len(r.stack) > 0 {
				r.stack = r.stack[:len(r.stack)-1]
			}
			if len(r.stack) > 0 {
				r.cuts = append(r.cuts, cutPoint{pos: i + 1, stack: cloneStack(r.stack)})
			}
		case ',':
			r.cuts = append(r.cuts, cutPoint{pos: i, stack: cloneStack(r.stack)})
		}
	}
	return r
}

func cloneStack(s []byte) []byte {
	return append([]byte(nil), s...)
}

func closers(stack []byte) string {
	var b strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// truncationCandidates returns repaired variants of a document that was cut
// off or carries trailing garbage, most faithful first:
//  1. the text up to the last closing brace,
//  2. the whole text with an open string closed and open containers balanced,
//  3. the text cut back to each earlier member boundary, balanced.
func truncationCandidates(s string) []string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return nil
	}
	s = s[start:]

	var out []string
	if last := strings.LastIndexByte(s, '}'); last > 0 {
		out = append(out, s[:last+1])
	}

	r := scan(s)
	if !r.inString && len(r.stack) == 0 {
		// Balanced text is not truncated; cutting it back would only drop data.
		return out
	}

	closed := s
	if r.inString {
		if r.escaped {
			closed = closed[:len(closed)-1]
		}
		closed += `"`
	}
	closed = strings.TrimRight(closed, " \t\r\n")
	closed = strings.TrimSuffix(closed, ",")
	out = append(out, closed+closers(r.stack))

	for i := len(r.cuts) - 1; i >= 0; i-- {
		cut := r.cuts[i]
		if cut.pos <= 1 {
			// Cutting back to the root opener would yield an empty document.
			continue
		}
		prefix := strings.TrimRight(s[:cut.pos], " \t\r\n")
		prefix = strings.TrimSuffix(prefix, ",")
		out = append(out, prefix+closers(cut.stack))
	}
	return out
}
