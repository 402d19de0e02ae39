package vdom

import (
	"fmt"
	"strings"
)

// Selector is a compiled CSS selector.
//
// Supported syntax: type selectors (including custom element names), the
// universal selector, #id, .class, [attr], [attr=value] with optional quotes,
// and the descendant (whitespace) and child (>) combinators.
type Selector struct {
	src   string
	parts []compound // left to right
	combs []byte     // combs[i] joins parts[i] and parts[i+1]: ' ' or '>'
}

type attrMatch struct {
	key      string
	value    string
	hasValue bool
}

type compound struct {
	tag     string // lower-case; "" or "*" matches any element
	id      string
	classes []string
	attrs   []attrMatch
}

// String returns the source text of the selector.
func (s *Selector) String() string {
	return s.src
}

// CompileSelector parses a selector.
func CompileSelector(src string) (*Selector, error) {
	p := &selectorParser{src: src}
	sel, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", src, err)
	}
	return sel, nil
}

// Match reports whether node matches the selector given its ancestors,
// ordered from the root down to node's parent.
func (s *Selector) Match(node *VNode, ancestors []*VNode) bool {
	if node == nil || node.Kind != KindElement {
		return false
	}
	return s.matchAt(len(s.parts)-1, node, ancestors)
}

func (s *Selector) matchAt(i int, node *VNode, ancestors []*VNode) bool {
	if !s.parts[i].match(node) {
		return false
	}
	if i == 0 {
		return true
	}
	switch s.combs[i-1] {
	case '>':
		if len(ancestors) == 0 {
			return false
		}
		parent := ancestors[len(ancestors)-1]
		return s.matchAt(i-1, parent, ancestors[:len(ancestors)-1])
	default:
		for j := len(ancestors) - 1; j >= 0; j-- {
			if s.matchAt(i-1, ancestors[j], ancestors[:j]) {
				return true
			}
		}
		return false
	}
}

// First returns the first element under root (inclusive) matching s.
func (s *Selector) First(root *VNode) *VNode {
	var found *VNode
	s.walk(root, nil, func(n *VNode) bool {
		found = n
		return false
	})
	return found
}

func (s *Selector) walk(n *VNode, ancestors []*VNode, visit func(*VNode) bool) bool {
	if n == nil || n.Kind != KindElement {
		return true
	}
	if s.Match(n, ancestors) && !visit(n) {
		return false
	}
	ancestors = append(ancestors, n)
	for _, c := range n.Children {
		if !s.walk(c, ancestors, visit) {
			return false
		}
	}
	return true
}

func (c *compound) match(n *VNode) bool {
	if n.Kind != KindElement {
		return false
	}
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, n.Tag) {
		return false
	}
	if c.id != "" {
		if id, _ := n.GetAttr("id"); id != c.id {
			return false
		}
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.GetAttr(a.key)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) parse() (*Selector, error) {
	sel := &Selector{src: p.src}
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("empty selector")
	}
	for {
		c, err := p.compound()
		if err != nil {
			return nil, err
		}
		sel.parts = append(sel.parts, c)

		sawSpace := p.skipSpace()
		if p.eof() {
			return sel, nil
		}
		comb := byte(' ')
		if p.src[p.pos] == '>' {
			comb = '>'
			p.pos++
			p.skipSpace()
		} else if !sawSpace {
			return nil, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
		if p.eof() {
			return nil, fmt.Errorf("dangling combinator")
		}
		sel.combs = append(sel.combs, comb)
	}
}

func (p *selectorParser) compound() (compound, error) {
	var c compound
	start := p.pos
	if !p.eof() && p.src[p.pos] == '*' {
		c.tag = "*"
		p.pos++
	} else {
		c.tag = strings.ToLower(p.ident())
	}
	for !p.eof() {
		switch p.src[p.pos] {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return c, fmt.Errorf("empty id at offset %d", p.pos)
			}
			c.id = id
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return c, fmt.Errorf("empty class at offset %d", p.pos)
			}
			c.classes = append(c.classes, class)
		case '[':
			p.pos++
			a, err := p.attr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		default:
			if p.pos == start {
				return c, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
			}
			return c, nil
		}
	}
	if p.pos == start {
		return c, fmt.Errorf("expected selector at offset %d", p.pos)
	}
	return c, nil
}

func (p *selectorParser) attr() (attrMatch, error) {
	var a attrMatch
	p.skipSpace()
	a.key = strings.ToLower(p.ident())
	if a.key == "" {
		return a, fmt.Errorf("empty attribute name at offset %d", p.pos)
	}
	p.skipSpace()
	if p.eof() {
		return a, fmt.Errorf("unterminated attribute selector")
	}
	if p.src[p.pos] == '=' {
		p.pos++
		p.skipSpace()
		a.hasValue = true
		if p.eof() {
			return a, fmt.Errorf("unterminated attribute selector")
		}
		if q := p.src[p.pos]; q == '"' || q == '\'' {
			end := strings.IndexByte(p.src[p.pos+1:], q)
			if end < 0 {
				return a, fmt.Errorf("unterminated string at offset %d", p.pos)
			}
			a.value = p.src[p.pos+1 : p.pos+1+end]
			p.pos += end + 2
		} else {
			a.value = p.ident()
		}
		p.skipSpace()
	}
	if p.eof() || p.src[p.pos] != ']' {
		return a, fmt.Errorf("expected ']' at offset %d", p.pos)
	}
	p.pos++
	return a, nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return p.pos > start
		}
	}
	return p.pos > start
}

func (p *selectorParser) eof() bool {
	return p.pos >= len(p.src)
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
		b >= 0x80
}
