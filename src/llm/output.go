package llm

import (
	"strings"

	"dinner_planner/src/model"

	"github.com/bytedance/sonic"
)

// StripCodeFences removes a surrounding markdown fence such as ```json ... ```.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string on the opening line
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// FirstBalanced returns the first substring opening with open and closing at
// its matching close, ignoring brackets inside JSON strings.
func FirstBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeObject finds and decodes the first JSON object in raw model output.
func DecodeObject(raw string) (map[string]any, error) {
	cleaned := StripCodeFences(raw)
	candidate, ok := FirstBalanced(cleaned, '{', '}')
	if !ok {
		candidate = cleaned
	}
	if candidate == "" {
		return nil, model.ErrEmptyModelOutput
	}

	var obj map[string]any
	if err := sonic.UnmarshalString(candidate, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, model.ErrNoJSONFound
	}
	return obj, nil
}
