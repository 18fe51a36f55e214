package svelte

import (
	"strings"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

var directiveKinds = map[string]bool{
	"on": true, "bind": true, "class": true, "style": true, "use": true, "transition": true,
	"in": true, "out": true, "animate": true, "let": true,
}

var blockKinds = map[string]bool{"if": true, "each": true, "await": true, "key": true, "snippet": true}

type parser struct {
	src string
	pos int
}

// Parse parses a component into its markup tree. Script and style contents
// are kept as raw text.
func Parse(src string) (*Root, error) {
	p := &parser{src: src}
	nodes, err := p.fragment()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		if p.at("</") {
			start := p.pos
			p.pos += 2
			return nil, p.errorf(start, "</%s> attempted to close an element that was not open", p.readWhile(isNameChar))
		}
		return nil, p.errorf(p.pos, "unexpected block continuation outside of a block")
	}
	return &Root{Start: 0, End: len(src), Nodes: nodes}, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) at(s string) bool { return strings.HasPrefix(p.src[p.pos:], s) }

func (p *parser) errorf(pos int, format string, args ...any) error {
	return newParseError(p.src, pos, format, args...)
}

func (p *parser) readWhile(f func(byte) bool) string {
	start := p.pos
	for p.pos < len(p.src) && f(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	p.readWhile(isSpace)
}

// fragment parses nodes up to a closing tag, a block continuation or the
// end of input.
func (p *parser) fragment() ([]Node, error) {
	var nodes []Node
	for !p.eof() {
		var n Node
		var err error
		switch {
		case p.at("</"), p.at("{:"), p.at("{/"):
			return nodes, nil
		case p.at("<!--"):
			n, err = p.comment()
		case p.at("<") && p.pos+1 < len(p.src) && isLetter(p.src[p.pos+1]):
			n, err = p.element()
		case p.at("{#"):
			n, err = p.block()
		case p.at("{@"):
			n, err = p.specialTag()
		case p.at("{"):
			n, err = p.expressionTag()
		default:
			n = p.text()
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) text() *Text {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '{' {
			break
		}
		if c == '<' && p.pos+1 < len(p.src) {
			if next := p.src[p.pos+1]; isLetter(next) || next == '/' || next == '!' {
				break
			}
		}
		p.pos++
	}
	return &Text{Start: start, End: p.pos, Data: p.src[start:p.pos]}
}

func (p *parser) comment() (*Comment, error) {
	start := p.pos
	i := strings.Index(p.src[start+4:], "-->")
	if i < 0 {
		return nil, p.errorf(start, "comment was left open")
	}
	dataEnd := start + 4 + i
	p.pos = dataEnd + 3
	return &Comment{Start: start, End: p.pos, Data: p.src[start+4 : dataEnd]}, nil
}

func (p *parser) element() (Node, error) {
	start := p.pos
	p.pos++
	name := p.readWhile(isNameChar)

	var attrs []Node
	selfClosing := false
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf(start, "<%s> was left open", name)
		}
		if p.at("/>") {
			p.pos += 2
			selfClosing = true
			break
		}
		if p.at(">") {
			p.pos++
			break
		}
		a, err := p.attribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}

	lower := strings.ToLower(name)
	if (lower == "script" || lower == "style") && !selfClosing {
		return p.rawElement(start, name, attrs)
	}
	el := &Element{Start: start, Name: name, Attributes: attrs, SelfClosing: selfClosing}
	if selfClosing || voidElements[lower] {
		el.End = p.pos
		return el, nil
	}

	nodes, err := p.fragment()
	if err != nil {
		return nil, err
	}
	el.Nodes = nodes
	if !p.at("</") {
		return nil, p.errorf(start, "<%s> was left open", name)
	}
	closeStart := p.pos
	p.pos += 2
	closing := p.readWhile(isNameChar)
	if closing != name {
		return nil, p.errorf(closeStart, "</%s> attempted to close <%s>", closing, name)
	}
	p.skipSpace()
	if !p.at(">") {
		return nil, p.errorf(p.pos, "expected '>'")
	}
	p.pos++
	el.End = p.pos
	return el, nil
}

func (p *parser) rawElement(start int, name string, attrs []Node) (*RawElement, error) {
	contentStart := p.pos
	closeTag := "</" + strings.ToLower(name)
	i := indexFold(p.src[contentStart:], closeTag)
	if i < 0 {
		return nil, p.errorf(start, "<%s> was left open", name)
	}
	contentEnd := contentStart + i
	p.pos = contentEnd + len(closeTag)
	gt := strings.IndexByte(p.src[p.pos:], '>')
	if gt < 0 {
		return nil, p.errorf(contentEnd, "expected '>'")
	}
	p.pos += gt + 1
	return &RawElement{
		Start:        start,
		End:          p.pos,
		Name:         name,
		Attributes:   attrs,
		ContentStart: contentStart,
		ContentEnd:   contentEnd,
		Content:      p.src[contentStart:contentEnd],
	}, nil
}

func (p *parser) attribute() (Node, error) {
	start := p.pos
	if p.at("{") {
		rest := strings.TrimLeft(p.src[p.pos+1:], " \t\r\n")
		if strings.HasPrefix(rest, "...") {
			dots := len(p.src) - len(rest)
			expr, end, err := expression(p.src, dots+3)
			if err != nil {
				return nil, err
			}
			p.pos = end + 1
			return &SpreadAttribute{Start: start, End: p.pos, Expression: expr}, nil
		}
		tag, err := p.expressionTag()
		if err != nil {
			return nil, err
		}
		return &Attribute{Start: start, End: tag.End, Name: strings.TrimSpace(tag.Expression.Source), Value: []Node{tag}}, nil
	}

	name := p.readWhile(isAttrNameChar)
	if name == "" {
		return nil, p.errorf(p.pos, "expected attribute name, found %q", p.src[p.pos])
	}
	var value []Node
	var quote byte
	save := p.pos
	p.skipSpace()
	if p.at("=") {
		p.pos++
		p.skipSpace()
		var err error
		if value, quote, err = p.attributeValue(); err != nil {
			return nil, err
		}
	} else {
		p.pos = save
	}

	if kind, rest, ok := strings.Cut(name, ":"); ok && directiveKinds[kind] {
		parts := strings.Split(rest, "|")
		return &Directive{Start: start, End: p.pos, Kind: kind, Name: parts[0], Modifiers: parts[1:], Value: value}, nil
	}
	return &Attribute{Start: start, End: p.pos, Name: name, Value: value, Quote: quote}, nil
}

func (p *parser) attributeValue() ([]Node, byte, error) {
	if p.eof() {
		return nil, 0, p.errorf(p.pos, "expected attribute value")
	}
	if c := p.src[p.pos]; c == '"' || c == '\'' {
		p.pos++
		nodes, err := p.valueParts(func() bool { return p.src[p.pos] == c })
		if err != nil {
			return nil, 0, err
		}
		if p.eof() {
			return nil, 0, p.errorf(len(p.src), "attribute value was left open")
		}
		if len(nodes) == 0 {
			nodes = []Node{&Text{Start: p.pos, End: p.pos}}
		}
		p.pos++
		return nodes, c, nil
	}
	nodes, err := p.valueParts(func() bool {
		c := p.src[p.pos]
		return isSpace(c) || c == '>' || p.at("/>")
	})
	if err != nil {
		return nil, 0, err
	}
	if len(nodes) == 0 {
		return nil, 0, p.errorf(p.pos, "expected attribute value")
	}
	return nodes, 0, nil
}

// valueParts splits an attribute value into text and expression tags.
func (p *parser) valueParts(stop func() bool) ([]Node, error) {
	var nodes []Node
	textStart := p.pos
	flush := func() {
		if p.pos > textStart {
			nodes = append(nodes, &Text{Start: textStart, End: p.pos, Data: p.src[textStart:p.pos]})
		}
	}
	for !p.eof() && !stop() {
		if p.src[p.pos] != '{' {
			p.pos++
			continue
		}
		flush()
		tag, err := p.expressionTag()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, tag)
		textStart = p.pos
	}
	flush()
	return nodes, nil
}

func (p *parser) expressionTag() (*ExpressionTag, error) {
	start := p.pos
	expr, end, err := expression(p.src, start+1)
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	return &ExpressionTag{Start: start, End: p.pos, Expression: expr}, nil
}

// specialTag parses {@html ...}, {@const ...}, {@debug ...} and {@render ...}.
func (p *parser) specialTag() (*ExpressionTag, error) {
	start := p.pos
	p.pos += 2
	kind := p.readWhile(isLetter)
	if kind == "" {
		return nil, p.errorf(p.pos, "expected tag name after {@")
	}
	expr, end, err := expression(p.src, p.pos)
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	tag := &ExpressionTag{Start: start, End: p.pos, Kind: kind}
	if strings.TrimSpace(expr.Source) != "" {
		tag.Expression = expr
	}
	return tag, nil
}

func (p *parser) block() (*Block, error) {
	start := p.pos
	p.pos += 2
	kind := p.readWhile(isLetter)
	if !blockKinds[kind] {
		return nil, p.errorf(start, "unknown block {#%s}", kind)
	}
	b := &Block{Start: start, Kind: kind}
	branch, err := p.branch(start, kind)
	if err != nil {
		return nil, err
	}
	for {
		b.Branches = append(b.Branches, branch)
		nodes, err := p.fragment()
		if err != nil {
			return nil, err
		}
		branch.Nodes = nodes
		branch.End = p.pos

		switch {
		case p.at("{:"):
			contStart := p.pos
			p.pos += 2
			word := p.readWhile(isLetter)
			switch word {
			case "else":
				save := p.pos
				p.skipSpace()
				if p.at("if") && (p.pos+2 >= len(p.src) || !isNameChar(p.src[p.pos+2])) {
					p.pos += 2
					word = "else if"
				} else {
					p.pos = save
				}
			case "then", "catch":
			default:
				return nil, p.errorf(contStart, "unexpected {:%s} in {#%s} block", word, kind)
			}
			if branch, err = p.branch(contStart, word); err != nil {
				return nil, err
			}
		case p.at("{/"):
			closeStart := p.pos
			p.pos += 2
			if word := p.readWhile(isLetter); word != kind {
				return nil, p.errorf(closeStart, "expected {/%s}, found {/%s}", kind, word)
			}
			p.skipSpace()
			if !p.at("}") {
				return nil, p.errorf(p.pos, "expected '}'")
			}
			p.pos++
			b.End = p.pos
			return b, nil
		default:
			return nil, p.errorf(start, "{#%s} block was left open", kind)
		}
	}
}

func (p *parser) branch(start int, kind string) (*Branch, error) {
	expr, end, err := expression(p.src, p.pos)
	if err != nil {
		return nil, err
	}
	p.pos = end + 1
	br := &Branch{Start: start, Kind: kind}
	if strings.TrimSpace(expr.Source) != "" {
		br.Expression = expr
	}
	return br, nil
}

// indexFold is strings.Index with ASCII case folding of sub.
func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isLetter(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.' || c == ':'
}

func isAttrNameChar(c byte) bool {
	return !isSpace(c) && !strings.ContainsRune(`=>/"'{}`, rune(c))
}
