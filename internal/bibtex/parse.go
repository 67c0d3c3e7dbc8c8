package bibtex

import (
	"strings"

	"go.uber.org/zap"
)

// Parse reads every entry from BibTeX source text.
//
// Parsing never fails. Malformed or unterminated entries are dropped and
// reported on log; @comment, @preamble and @string blocks are skipped.
// Values keep their inner braces and markup, only the outer delimiters are
// removed. Concatenation with # joins the pieces. A nil log discards output.
func Parse(src string, log *zap.Logger) []RawEntry {
	if log == nil {
		log = zap.NewNop()
	}
	p := &parser{src: src, log: log}
	return p.entries()
}

type parser struct {
	src string
	pos int
	log *zap.Logger
}

func (p *parser) entries() []RawEntry {
	var out []RawEntry
	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			return out
		}
		p.pos += at + 1
		start := p.pos - 1

		entryType := p.ident()
		p.skipSpace()
		if entryType == "" || p.eof() || (p.peek() != '{' && p.peek() != '(') {
			// Stray @, e.g. an email address in a comment.
			continue
		}
		closer := byte('}')
		if p.peek() == '(' {
			closer = ')'
		}
		p.pos++

		switch strings.ToLower(entryType) {
		case "comment", "preamble", "string":
			p.log.Debug("skipping block", zap.String("type", entryType), zap.Int("offset", start))
			if !p.skipBlock(closer) {
				return out
			}
			continue
		}

		entry, ok := p.entry(entryType, closer)
		if !ok {
			p.log.Warn("dropping malformed entry",
				zap.String("type", entryType),
				zap.String("key", entry.Key),
				zap.Int("offset", start))
			continue
		}
		out = append(out, entry)
	}
}

// entry parses the key and fields after the opening delimiter.
func (p *parser) entry(entryType string, closer byte) (RawEntry, bool) {
	e := RawEntry{Type: entryType}

	p.skipSpace()
	keyEnd := strings.IndexAny(p.src[p.pos:], ",\n"+string(closer))
	if keyEnd < 0 {
		p.pos = len(p.src)
		return e, false
	}
	if p.src[p.pos+keyEnd] == '\n' {
		// Key may continue to the comma on the next line; BibTeX keys
		// have no whitespace, so a newline ends the key.
		e.Key = strings.TrimSpace(p.src[p.pos : p.pos+keyEnd])
		p.pos += keyEnd
		p.skipSpace()
		if p.eof() {
			return e, false
		}
		if p.peek() == ',' {
			p.pos++
		}
	} else {
		e.Key = strings.TrimSpace(p.src[p.pos : p.pos+keyEnd])
		p.pos += keyEnd
		if p.src[p.pos] == closer {
			p.pos++
			return e, true
		}
		p.pos++ // ','
	}

	for {
		p.skipSpaceAndCommas()
		if p.eof() {
			return e, false
		}
		if p.peek() == closer {
			p.pos++
			return e, true
		}
		if p.peek() == '@' {
			// Next entry began before this one closed.
			return e, false
		}

		name := p.fieldName()
		p.skipSpace()
		if name == "" || p.eof() || p.peek() != '=' {
			p.skipToNextEntry()
			return e, false
		}
		p.pos++

		value, ok := p.value(closer)
		if !ok {
			return e, false
		}
		e.Set(name, value)
	}
}

// value parses one or more # separated pieces.
func (p *parser) value(closer byte) (string, bool) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", false
		}
		switch c := p.peek(); c {
		case '{':
			p.pos++
			s, ok := p.balanced('}')
			if !ok {
				return "", false
			}
			b.WriteString(s)
		case '"':
			p.pos++
			s, ok := p.quoted()
			if !ok {
				return "", false
			}
			b.WriteString(s)
		default:
			start := p.pos
			for !p.eof() {
				c := p.peek()
				if c == ',' || c == closer || c == '#' || isSpace(c) {
					break
				}
				p.pos++
			}
			b.WriteString(p.src[start:p.pos])
		}

		p.skipSpace()
		if !p.eof() && p.peek() == '#' {
			p.pos++
			continue
		}
		return b.String(), true
	}
}

// balanced returns text up to the brace matching an already consumed '{'.
func (p *parser) balanced(end byte) (string, bool) {
	start := p.pos
	depth := 1
	for !p.eof() {
		switch p.peek() {
		case '\\':
			p.pos++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := p.src[start:p.pos]
				p.pos++
				return s, true
			}
		}
		p.pos++
	}
	return "", false
}

// quoted returns text up to the closing quote outside any braces.
func (p *parser) quoted() (string, bool) {
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.peek() {
		case '\\':
			p.pos++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				s := p.src[start:p.pos]
				p.pos++
				return s, true
			}
		}
		p.pos++
	}
	return "", false
}

// skipBlock consumes a delimited block whose opener was already consumed.
func (p *parser) skipBlock(closer byte) bool {
	opener := byte('{')
	if closer == ')' {
		opener = '('
	}
	depth := 1
	for !p.eof() {
		switch p.peek() {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				p.pos++
				return true
			}
		}
		p.pos++
	}
	return false
}

// skipToNextEntry advances past the rest of a broken entry.
func (p *parser) skipToNextEntry() {
	next := strings.IndexByte(p.src[p.pos:], '@')
	if next < 0 {
		p.pos = len(p.src)
		return
	}
	p.pos += next
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) fieldName() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '=' || c == ',' || c == '{' || c == '}' || c == '"' || isSpace(c) {
			break
		}
		p.pos++
	}
	return strings.ToLower(p.src[start:p.pos])
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

func (p *parser) skipSpaceAndCommas() {
	for !p.eof() && (p.peek() == ',' || isSpace(p.peek())) {
		p.pos++
	}
}

// isSpace reports ASCII whitespace. Bytes of multi-byte UTF-8 runes never match.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }
