package engine

import "strings"

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites design script source into something zygomys
// can read:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables of the same name.
//  2. kebab-case identifiers become snake_case (finger-joint -> finger_joint);
//     zygomys reads a hyphen as the subtraction operator.
//  3. ; and ;; line comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched, so
// SVG path data such as "M 0 0 L -5 10" survives.
func preprocessSource(source string) string {
	p := preprocessor{src: source}
	p.out.Grow(len(source) + len(source)/4)
	for p.i < len(p.src) {
		switch c := p.src[p.i]; {
		case c == '"':
			p.quoted('"', true)
		case c == '`':
			p.quoted('`', false)
		case c == ';':
			p.comment()
		case c == ':' && p.peek(1) == '=':
			p.copy(2)
		case c == ':' && isLetter(p.peek(1)):
			p.keyword()
		case c == '-' && p.i > 0 && isIdentChar(p.src[p.i-1]) && isLetter(p.peek(1)):
			p.out.WriteByte('_')
			p.i++
		default:
			p.copy(1)
		}
	}
	return p.out.String()
}

type preprocessor struct {
	src string
	i   int
	out strings.Builder
}

// peek returns the byte at offset n from the cursor, or 0 past the end.
func (p *preprocessor) peek(n int) byte {
	if p.i+n < len(p.src) {
		return p.src[p.i+n]
	}
	return 0
}

func (p *preprocessor) copy(n int) {
	end := min(p.i+n, len(p.src))
	p.out.WriteString(p.src[p.i:end])
	p.i = end
}

// quoted copies a literal delimited by q, including both delimiters.
func (p *preprocessor) quoted(q byte, escapes bool) {
	p.copy(1)
	for p.i < len(p.src) && p.src[p.i] != q {
		if escapes && p.src[p.i] == '\\' {
			p.copy(2)
			continue
		}
		p.copy(1)
	}
	p.copy(1)
}

func (p *preprocessor) comment() {
	p.out.WriteString("//")
	for p.i < len(p.src) && p.src[p.i] == ';' {
		p.i++
	}
	end := strings.IndexByte(p.src[p.i:], '\n')
	if end < 0 {
		end = len(p.src) - p.i
	}
	p.copy(end)
}

func (p *preprocessor) keyword() {
	j := p.i + 1
	for j < len(p.src) && isKWChar(p.src[j]) {
		j++
	}
	p.out.WriteByte('"')
	p.out.WriteString(kwPrefix)
	p.out.WriteString(p.src[p.i+1 : j])
	p.out.WriteByte('"')
	p.i = j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
