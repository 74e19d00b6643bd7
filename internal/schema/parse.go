package schema

import (
	"errors"
	"strings"
)

// Parser errors.
var (
	// ErrBadDefinition is returned for input that is not a parenthesized
	// RFC 4512 definition (unbalanced parens, unterminated quote, wrong
	// framing, a keyword with no value).
	ErrBadDefinition = errors.New("schema: malformed definition")
	// ErrMissingOID is returned when a definition's leading numericoid is
	// absent.
	ErrMissingOID = errors.New("schema: definition has no OID")
)

// splitDefinition breaks the body of a definition (outer parens already
// removed) into tokens: bare words, quoted strings (quotes kept), and
// parenthesized groups (parens stripped, inner text kept whole for the
// keyword handler to interpret).
func splitDefinition(s string) ([]string, error) {
	var toks []string
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, ErrBadDefinition
			}
			toks = append(toks, s[i:i+end+2])
			i += end + 2

		case c == '(':
			depth, quoted := 1, false
			j := i + 1
			for ; j < len(s) && depth > 0; j++ {
				switch {
				case quoted:
					quoted = s[j] != '\''
				case s[j] == '\'':
					quoted = true
				case s[j] == '(':
					depth++
				case s[j] == ')':
					depth--
				}
			}
			if depth != 0 {
				return nil, ErrBadDefinition
			}
			toks = append(toks, strings.TrimSpace(s[i+1:j-1]))
			i = j

		default:
			j := i
			for j < len(s) && !isDefSpace(s[j]) && s[j] != '(' && s[j] != '\'' {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks, nil
}

func isDefSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// defReader walks a definition's token stream: a leading OID, then
// keyword/value pairs and bare flags.
type defReader struct {
	toks []string
	pos  int
}

// newDefReader checks the outer "( ... )" framing, tokenizes the body, and
// positions the reader on the leading OID.
func newDefReader(def string) (*defReader, error) {
	def = strings.TrimSpace(def)
	if len(def) < 2 || def[0] != '(' || def[len(def)-1] != ')' {
		return nil, ErrBadDefinition
	}
	toks, err := splitDefinition(def[1 : len(def)-1])
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrMissingOID
	}
	return &defReader{toks: toks}, nil
}

func (r *defReader) more() bool {
	return r.pos < len(r.toks)
}

func (r *defReader) next() string {
	tok := r.toks[r.pos]
	r.pos++
	return tok
}

// arg returns the value token following a keyword.
func (r *defReader) arg() (string, error) {
	if !r.more() {
		return "", ErrBadDefinition
	}
	return r.next(), nil
}

// qdescrs interprets a NAME value: either one 'quoted' descriptor or a
// group of them.
func qdescrs(tok string) []string {
	if !strings.Contains(tok, "'") {
		return []string{tok}
	}
	var names []string
	for {
		open := strings.IndexByte(tok, '\'')
		if open < 0 {
			return names
		}
		length := strings.IndexByte(tok[open+1:], '\'')
		if length < 0 {
			return names
		}
		if length > 0 {
			names = append(names, tok[open+1:open+1+length])
		}
		tok = tok[open+length+2:]
	}
}

// oidList interprets a MUST/MAY value: either one attribute name or a
// group joined with '$'.
func oidList(tok string) []string {
	var out []string
	for _, part := range strings.Split(tok, "$") {
		if part = unquote(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// trimSyntaxBound strips a SYNTAX value's optional length bound, as in
// "1.3.6.1.4.1.1466.115.121.1.15{256}".
func trimSyntaxBound(tok string) string {
	tok = unquote(tok)
	if brace := strings.IndexByte(tok, '{'); brace >= 0 {
		return tok[:brace]
	}
	return tok
}

func usageNamed(tok string) Usage {
	switch strings.ToLower(unquote(tok)) {
	case "directoryoperation":
		return UsageDirectoryOperation
	case "distributedoperation":
		return UsageDistributedOperation
	case "dsaoperation":
		return UsageDSAOperation
	}
	return UsageUserApplications
}

// parseAttributeType parses one attributeTypes definition, e.g.
// ( 2.5.4.3 NAME ( 'cn' 'commonName' ) SUP name ).
func parseAttributeType(def string) (*AttributeType, error) {
	r, err := newDefReader(def)
	if err != nil {
		return nil, err
	}

	at := &AttributeType{OID: r.next()}
	for r.more() {
		var tok string
		switch strings.ToUpper(r.next()) {
		case "NAME":
			if tok, err = r.arg(); err == nil {
				at.Names = qdescrs(tok)
			}
		case "DESC":
			if tok, err = r.arg(); err == nil {
				at.Desc = unquote(tok)
			}
		case "OBSOLETE":
			at.Obsolete = true
		case "SUP":
			if tok, err = r.arg(); err == nil {
				at.Sup = unquote(tok)
			}
		case "EQUALITY":
			if tok, err = r.arg(); err == nil {
				at.Equality = unquote(tok)
			}
		case "ORDERING":
			if tok, err = r.arg(); err == nil {
				at.Ordering = unquote(tok)
			}
		case "SUBSTR":
			if tok, err = r.arg(); err == nil {
				at.Substr = unquote(tok)
			}
		case "SYNTAX":
			if tok, err = r.arg(); err == nil {
				at.Syntax = trimSyntaxBound(tok)
			}
		case "SINGLE-VALUE":
			at.SingleValue = true
		case "COLLECTIVE":
			at.Collective = true
		case "NO-USER-MODIFICATION":
			at.NoUserModification = true
		case "USAGE":
			if tok, err = r.arg(); err == nil {
				at.Usage = usageNamed(tok)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return at, nil
}

// parseObjectClass parses one objectClasses definition, e.g.
// ( 2.5.6.6 NAME 'person' SUP top STRUCTURAL MUST ( sn $ cn ) ).
func parseObjectClass(def string) (*ObjectClass, error) {
	r, err := newDefReader(def)
	if err != nil {
		return nil, err
	}

	oc := &ObjectClass{OID: r.next(), Kind: KindStructural}
	for r.more() {
		var tok string
		switch strings.ToUpper(r.next()) {
		case "NAME":
			if tok, err = r.arg(); err == nil {
				oc.Names = qdescrs(tok)
			}
		case "DESC":
			if tok, err = r.arg(); err == nil {
				oc.Desc = unquote(tok)
			}
		case "OBSOLETE":
			oc.Obsolete = true
		case "SUP":
			if tok, err = r.arg(); err == nil {
				oc.Sup = unquote(tok)
			}
		case "ABSTRACT":
			oc.Kind = KindAbstract
		case "STRUCTURAL":
			oc.Kind = KindStructural
		case "AUXILIARY":
			oc.Kind = KindAuxiliary
		case "MUST":
			if tok, err = r.arg(); err == nil {
				oc.Must = oidList(tok)
			}
		case "MAY":
			if tok, err = r.arg(); err == nil {
				oc.May = oidList(tok)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return oc, nil
}

// parseMatchingRule parses one matchingRules definition, e.g.
// ( 2.5.13.2 NAME 'caseIgnoreMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 ).
func parseMatchingRule(def string) (*MatchingRule, error) {
	r, err := newDefReader(def)
	if err != nil {
		return nil, err
	}

	mr := &MatchingRule{OID: r.next()}
	for r.more() {
		var tok string
		switch strings.ToUpper(r.next()) {
		case "NAME":
			if tok, err = r.arg(); err == nil {
				mr.Names = qdescrs(tok)
			}
		case "DESC":
			if tok, err = r.arg(); err == nil {
				mr.Desc = unquote(tok)
			}
		case "OBSOLETE":
			mr.Obsolete = true
		case "SYNTAX":
			if tok, err = r.arg(); err == nil {
				mr.Syntax = trimSyntaxBound(tok)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return mr, nil
}

// parseSyntax parses one ldapSyntaxes definition, e.g.
// ( 1.3.6.1.4.1.1466.115.121.1.15 DESC 'Directory String' ).
func parseSyntax(def string) (*Syntax, error) {
	r, err := newDefReader(def)
	if err != nil {
		return nil, err
	}

	syn := &Syntax{OID: r.next()}
	for r.more() {
		var tok string
		switch strings.ToUpper(r.next()) {
		case "DESC":
			if tok, err = r.arg(); err == nil {
				syn.Desc = unquote(tok)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return syn, nil
}
