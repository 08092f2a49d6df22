// Package template renders the {{name}}-style message templates used by notifiers.
package template

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
)

// segment is either literal text or, when key is set, a placeholder.
type segment struct {
	text string
	key  string
}

// Template is a parsed message template. The zero value renders "".
type Template struct {
	src  string
	segs []segment
}

// Parse splits src into literal text and {{key}} placeholders.
func Parse(src string) (Template, error) {
	t := Template{src: src}
	rest := src
	for rest != "" {
		start := strings.Index(rest, "{{")
		if start == -1 {
			t.segs = append(t.segs, segment{text: rest})
			break
		}
		if start > 0 {
			t.segs = append(t.segs, segment{text: rest[:start]})
		}
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return Template{}, renderErr("template.parse", "unclosed placeholder")
		}
		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return Template{}, renderErr("template.parse", "empty placeholder")
		}
		t.segs = append(t.segs, segment{key: key})
		rest = rest[end+2:]
	}
	return t, nil
}

// Must panics on a parse error. For templates known at compile time.
func Must(t Template, err error) Template {
	if err != nil {
		panic(err)
	}
	return t
}

// Execute substitutes vars. Every placeholder must have a value.
func (t Template) Execute(vars map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(t.src))
	for _, s := range t.segs {
		if s.key == "" {
			out.WriteString(s.text)
			continue
		}
		v, ok := vars[s.key]
		if !ok {
			return "", renderErr("template.render", fmt.Sprintf("unknown placeholder %q", s.key))
		}
		out.WriteString(v)
	}
	return out.String(), nil
}

func renderErr(op, msg string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrInvalidConfig),
	}
}
