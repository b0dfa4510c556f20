// Package loosejson recovers named fields from text that is meant to be a JSON
// object but may be malformed, wrapped in prose or inconsistently quoted.
//
// The parser is a best-effort recursive descent: it never fails as a whole.
// Find locates the first `"name": value` pair anywhere in the text whose value
// parses, and each field rule in fields.go interprets that value on its own.
package loosejson

import (
	"strings"
	"unicode"
)

// Kind identifies the shape of a recovered value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindList
	KindObject
)

// Value is a recovered JSON-like value. Raw holds the exact source text of the value.
type Value struct {
	Kind   Kind
	Raw    string
	Str    string
	Items  []Value
	Fields []Member
	// Broken marks a list or object whose inner syntax could not be parsed.
	Broken bool
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value Value
}

var quoteNormalizer = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)

// Document is model output prepared for field lookups.
type Document struct {
	text string
}

// NewDocument normalizes typographic quotes in text.
func NewDocument(text string) *Document {
	return &Document{text: quoteNormalizer.Replace(text)}
}

// Text returns the normalized source text.
func (d *Document) Text() string {
	return d.text
}

// Find returns the first value recorded under key. Occurrences whose value is
// not a list, object, string or number (null, true, garbage) are skipped.
func (d *Document) Find(key string) (Value, bool) {
	needle := `"` + key + `"`
	from := 0
	for {
		idx := strings.Index(d.text[from:], needle)
		if idx < 0 {
			return Value{}, false
		}
		pos := from + idx + len(needle)
		from = pos

		p := &parser{src: d.text, pos: pos}
		p.skipSpace()
		if !p.consume(':') {
			continue
		}
		p.skipSpace()
		if v, ok := p.value(); ok {
			return v, true
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) value() (Value, bool) {
	start := p.pos
	switch c := p.peek(); {
	case c == '[':
		return p.list(start)
	case c == '{':
		return p.object(start)
	case c == '"' || c == '\'':
		s, ok := p.quoted(c)
		if !ok {
			return Value{}, false
		}
		return Value{Kind: KindString, Raw: p.src[start:p.pos], Str: s}, true
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number(start)
	default:
		return Value{}, false
	}
}

// quoted reads a string delimited by q. Backslash escapes are honoured.
func (p *parser) quoted(q byte) (string, bool) {
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(unescape(p.src[p.pos+1]))
			p.pos += 2
		case c == q:
			p.pos++
			return b.String(), true
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", false
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (p *parser) number(start int) (Value, bool) {
	p.consume('-')
	digits := p.digits()
	if digits == 0 {
		p.pos = start
		return Value{}, false
	}
	if p.peek() == '.' {
		save := p.pos
		p.pos++
		if p.digits() == 0 {
			p.pos = save
		}
	}
	raw := p.src[start:p.pos]
	return Value{Kind: KindNumber, Raw: raw, Str: raw}, true
}

func (p *parser) digits() int {
	n := 0
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
		n++
	}
	return n
}

// bareword reads an unquoted token such as null, true or a stray word inside a list.
func (p *parser) bareword() string {
	start := p.pos
	for !p.eof() && !strings.ContainsRune(",]}:", rune(p.src[p.pos])) && p.src[p.pos] != '\n' {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

func (p *parser) list(start int) (Value, bool) {
	p.pos++
	v := Value{Kind: KindList}
	for {
		p.skipSpace()
		if p.eof() {
			return p.broken(start, KindList), true
		}
		if p.consume(']') {
			v.Raw = p.src[start:p.pos]
			return v, true
		}
		item, ok := p.value()
		if !ok {
			word := p.bareword()
			if word == "" {
				return p.broken(start, KindList), true
			}
			if word != "null" {
				item = Value{Kind: KindString, Raw: word, Str: word}
				v.Items = append(v.Items, item)
			}
		} else {
			v.Items = append(v.Items, item)
		}
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.peek() != ']' {
			return p.broken(start, KindList), true
		}
	}
}

func (p *parser) object(start int) (Value, bool) {
	p.pos++
	v := Value{Kind: KindObject}
	for {
		p.skipSpace()
		if p.eof() {
			return p.broken(start, KindObject), true
		}
		if p.consume('}') {
			v.Raw = p.src[start:p.pos]
			return v, true
		}

		var key string
		if c := p.peek(); c == '"' || c == '\'' {
			k, ok := p.quoted(c)
			if !ok {
				return p.broken(start, KindObject), true
			}
			key = k
		} else {
			key = p.bareword()
		}
		p.skipSpace()
		if !p.consume(':') {
			return p.broken(start, KindObject), true
		}
		p.skipSpace()

		member := Member{Key: key}
		if val, ok := p.value(); ok {
			member.Value = val
		} else {
			word := p.bareword()
			member.Value = Value{Kind: KindString, Raw: word, Str: word}
		}
		v.Fields = append(v.Fields, member)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.peek() != '}' {
			return p.broken(start, KindObject), true
		}
	}
}

// broken returns a value covering the text up to the matching closing bracket,
// or to the end of the line when there is none.
func (p *parser) broken(start int, kind Kind) Value {
	open, closing := byte('['), byte(']')
	if kind == KindObject {
		open, closing = '{', '}'
	}
	depth := 0
	end, closed := len(p.src), false
scan:
	for i := start; i < len(p.src); i++ {
		switch p.src[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				end, closed = i+1, true
				break scan
			}
		}
	}
	if !closed {
		if nl := strings.IndexByte(p.src[start:], '\n'); nl >= 0 {
			end = start + nl
		}
	}
	p.pos = end
	return Value{Kind: kind, Raw: p.src[start:end], Broken: true}
}
