package widgets

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is one CSS rule: a selector list and its declarations as raw strings.
type Rule struct {
	Selectors []string          // e.g. ".panel", "#apply", "slider"
	Props     map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules; later rules override earlier ones. Resolved
// styles are cached per type, class and id.
type Stylesheet struct {
	Rules []Rule
	cache map[string]Style
}

// ParseCSS parses a primitive stylesheet: selectors are a type name, .class
// or #id, optionally comma separated, followed by "key: value;" blocks.
// Combinators and @rules are not supported; blocks with unsupported
// selectors are skipped.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	l := css.NewLexer(parse.NewInput(strings.NewReader(content)))

	var (
		offset, blockStart int
		depth              int
		selector           strings.Builder
		selectors          []string
		complexSel         bool
		pendingSpace       bool
		decl               strings.Builder
		props              map[string]string
	)
	endSelector := func() {
		sel := strings.TrimSpace(selector.String())
		if complexSel || !simpleSelector(sel) {
			complexSel = true
		} else {
			selectors = append(selectors, sel)
		}
		selector.Reset()
		pendingSpace = false
	}
	endDecl := func() {
		k, v, ok := strings.Cut(decl.String(), ":")
		decl.Reset()
		if !ok {
			return
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("css: %w", err)
			}
			break
		}
		text := string(data)
		start := offset
		offset += len(data)
		if tt == css.CommentToken {
			continue
		}

		if depth == 0 {
			switch tt {
			case css.WhitespaceToken:
				if selector.Len() > 0 {
					pendingSpace = true
				}
			case css.CommaToken:
				endSelector()
			case css.LeftBraceToken:
				endSelector()
				depth, blockStart = 1, start
				props = make(map[string]string)
			case css.RightBraceToken:
				return nil, fmt.Errorf("css: unexpected } at offset %d", start)
			default:
				if pendingSpace {
					complexSel = true
				}
				if selector.Len() == 0 && len(selectors) == 0 && !complexSel {
					blockStart = start
				}
				selector.WriteString(text)
			}
			continue
		}

		switch tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth > 0 {
				continue
			}
			endDecl()
			if !complexSel && len(selectors) > 0 {
				sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Props: props})
			}
			selectors, complexSel, props = nil, false, nil
		case css.SemicolonToken:
			if depth == 1 {
				endDecl()
			}
		case css.WhitespaceToken:
			if depth == 1 {
				decl.WriteByte(' ')
			}
		default:
			if depth == 1 {
				decl.WriteString(text)
			}
		}
	}

	if depth > 0 {
		return nil, fmt.Errorf("css: unterminated block at offset %d", blockStart)
	}
	if strings.TrimSpace(selector.String()) != "" || len(selectors) > 0 {
		return nil, fmt.Errorf("css: trailing text at offset %d", blockStart)
	}
	return sheet, nil
}

// MustParseCSS is ParseCSS for built-in stylesheets.
func MustParseCSS(content string) *Stylesheet {
	sheet, err := ParseCSS(content)
	if err != nil {
		panic(err)
	}
	return sheet
}

func simpleSelector(sel string) bool {
	name := sel
	if strings.HasPrefix(sel, ".") || strings.HasPrefix(sel, "#") {
		name = sel[1:]
	}
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func (r Rule) matches(n *Node) bool {
	for _, sel := range r.Selectors {
		switch {
		case sel[0] == '.':
			if n.Class != "" && n.Class == sel[1:] {
				return true
			}
		case sel[0] == '#':
			if n.ID != "" && n.ID == sel[1:] {
				return true
			}
		default:
			if n.Type == sel {
				return true
			}
		}
	}
	return false
}

// Props returns the merged declarations matching n, later rules winning.
func (s *Stylesheet) Props(n *Node) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		if rule.matches(n) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Style resolves n's computed style. A nil sheet yields the defaults.
func (s *Stylesheet) Style(n *Node) Style {
	if s == nil {
		return DefaultStyle()
	}
	key := n.Type + "." + n.Class + "#" + n.ID
	if st, ok := s.cache[key]; ok {
		return st
	}
	st := ResolveProps(s.Props(n))
	if s.cache == nil {
		s.cache = make(map[string]Style)
	}
	s.cache[key] = st
	return st
}
