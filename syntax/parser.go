package syntax

// Grammar, highest precedence first:
//
//	alt      := concat ('|' concat)*
//	concat   := closure*
//	closure  := atom '*'?
//	atom     := literal | class | '(' alt ')'
//	class    := '[' classitem+ ']'
//	classitem:= '/' ']' | any-char-except-']'
//	literal  := any char except '(' ')' '|' '*' '[' ']' '/'
//
// The parser is a recursive descent reader with one-byte lookahead and no
// recovery: the first error aborts the whole parse.

// parser carries the scanning position through the descent.
type parser struct {
	pattern string
	pos     int
}

// Parse parses a pattern into its syntax tree. It fails with a
// *SyntaxError if the pattern is malformed.
func Parse(pattern string) (*Regexp, error) {
	p := &parser{pattern: pattern}
	re, err := p.alternate()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// alternate only stops short of the end on ')'; with no open
		// group on the stack that ')' is unmatched.
		return nil, p.errorAt(ErrUnbalancedParen, p.pos)
	}
	return re, nil
}

// alternate parses alt := concat ('|' concat)*.
// An empty side of '|' parses as OpEmpty, so "a|", "|a" and "a||b" are
// all well formed.
func (p *parser) alternate() (*Regexp, error) {
	left, err := p.concat()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.pattern) && p.pattern[p.pos] == '|' {
		p.pos++
		right, err := p.concat()
		if err != nil {
			return nil, err
		}
		left = &Regexp{Op: OpAlternate, Sub: []*Regexp{left, right}}
	}
	return left, nil
}

// concat parses concat := closure*. Zero closures yield OpEmpty; two or
// more fold into left-nested OpConcat pairs.
func (p *parser) concat() (*Regexp, error) {
	var left *Regexp
	for p.pos < len(p.pattern) {
		c := p.pattern[p.pos]
		if c == ')' || c == '|' {
			break
		}
		switch c {
		case '*':
			// Either nothing precedes the star, or the preceding
			// closure already consumed its star; both leave this one
			// with nothing to repeat.
			return nil, p.errorAt(ErrDanglingStar, p.pos)
		case ']', '/':
			return nil, p.errorAt(ErrReservedChar, p.pos)
		}
		cl, err := p.closure()
		if err != nil {
			return nil, err
		}
		if left == nil {
			left = cl
		} else {
			left = &Regexp{Op: OpConcat, Sub: []*Regexp{left, cl}}
		}
	}
	if left == nil {
		return &Regexp{Op: OpEmpty}, nil
	}
	return left, nil
}

// closure parses closure := atom '*'?.
func (p *parser) closure() (*Regexp, error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) && p.pattern[p.pos] == '*' {
		p.pos++
		return &Regexp{Op: OpStar, Sub: []*Regexp{atom}}, nil
	}
	return atom, nil
}

// atom parses atom := literal | class | '(' alt ')'. The caller has
// already ruled out the reserved bytes ')' '|' '*' ']' '/'.
func (p *parser) atom() (*Regexp, error) {
	switch c := p.pattern[p.pos]; c {
	case '(':
		open := p.pos
		p.pos++
		sub, err := p.alternate()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.pattern) || p.pattern[p.pos] != ')' {
			return nil, p.errorAt(ErrUnbalancedParen, open)
		}
		p.pos++
		return sub, nil
	case '[':
		return p.class()
	default:
		p.pos++
		return &Regexp{Op: OpLiteral, Char: c}, nil
	}
}

// class parses class := '[' classitem+ ']'. Only "/]" is special inside
// the body; any other byte, '/' included, is an ordinary member.
func (p *parser) class() (*Regexp, error) {
	open := p.pos
	p.pos++ // consume '['
	var seen [256]bool
	count := 0
	for {
		if p.pos >= len(p.pattern) {
			return nil, p.errorAt(ErrUnterminatedClass, open)
		}
		c := p.pattern[p.pos]
		switch {
		case c == ']':
			p.pos++
			if count == 0 {
				return nil, p.errorAt(ErrEmptyClass, open)
			}
			return &Regexp{Op: OpCharClass, Class: classBytes(&seen, count)}, nil
		case c == '/':
			if p.pos+1 >= len(p.pattern) {
				return nil, p.errorAt(ErrTrailingEscape, p.pos)
			}
			if p.pattern[p.pos+1] == ']' {
				if !seen[']'] {
					seen[']'] = true
					count++
				}
				p.pos += 2
				continue
			}
			// '/' not starting an escape is a literal member
			fallthrough
		default:
			if !seen[c] {
				seen[c] = true
				count++
			}
			p.pos++
		}
	}
}

// classBytes flattens a membership table into a sorted, duplicate-free
// byte slice.
func classBytes(seen *[256]bool, count int) []byte {
	members := make([]byte, 0, count)
	for i := 0; i < 256; i++ {
		if seen[i] {
			members = append(members, byte(i))
		}
	}
	return members
}

func (p *parser) errorAt(err error, pos int) error {
	return &SyntaxError{Pattern: p.pattern, Pos: pos, Err: err}
}
