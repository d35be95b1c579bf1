package header

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cdecl-generator/ctype"
	"cdecl-generator/internal/common"
)

var (
	blockCommentRe = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	multiSpaceRe   = regexp.MustCompile(`[ \t]+`)

	markerRe = regexp.MustCompile(
		`(?m)^[ \t]*cdecl_(type|struct|union|enum|var|func|const)\(([A-Za-z_]\w*)\)[ \t]*;?[ \t]*$`)
	defineRe = regexp.MustCompile(
		`(?m)^[ \t]*#[ \t]*define[ \t]+([A-Za-z_]\w*)[ \t]+\(?[ \t]*(-?(?:0[xX][0-9a-fA-F]+|\d+))[ \t]*([UuLl]*)[ \t]*\)?[ \t]*$`)
	directiveRe = regexp.MustCompile(`(?m)^[ \t]*#[^\n]*`)
	aggregateRe = regexp.MustCompile(
		`(?m)^[ \t]*(typedef[ \t]+)?(struct|union|enum)[ \t]*([A-Za-z_]\w*)?[ \t]*\{([^{}]*)\}[ \t]*([A-Za-z_]\w*)?[ \t]*;`)
	typedefRe = regexp.MustCompile(
		`(?m)^[ \t]*typedef[ \t]+([A-Za-z_][\w \t*]*?)[ \t*]([A-Za-z_]\w*)[ \t]*;`)
	funcRe = regexp.MustCompile(
		`(?m)^[ \t]*(?:extern[ \t]+)?((?:[A-Za-z_]\w*[ \t]+)+[* \t]*)([A-Za-z_]\w*)[ \t]*\(([^()]*)\)[ \t]*(?:__asm__[ \t]*\([ \t]*"([^"]+)"[ \t]*\))?[ \t]*;`)
	varRe = regexp.MustCompile(
		`(?m)^[ \t]*(?:(extern|static)[ \t]+)?((?:[A-Za-z_]\w*[ \t]+)+[* \t]*)([A-Za-z_]\w*)[ \t]*((?:\[\d*\])*)[ \t]*;`)

	identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// Parse reads preprocessed header text and builds the symbol table.
func Parse(content string) (*Table, error) {
	content = blockCommentRe.ReplaceAllString(content, "")
	content = lineCommentRe.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = multiSpaceRe.ReplaceAllString(content, " ")

	p := &parser{
		table: NewTable(),
		src:   []byte(content),
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	sort.SliceStable(p.table.Symbols, func(i, j int) bool {
		return p.table.Symbols[i].offset < p.table.Symbols[j].offset
	})

	return p.table, nil
}

// parser consumes the working copy pass by pass, blanking every recognized
// region so byte offsets stay valid for declaration ordering.
type parser struct {
	table *Table
	src   []byte
}

func (p *parser) run() error {
	passes := []func() error{
		p.scanMarkers,
		p.scanDefines,
		p.scanDirectives,
		p.scanAggregates,
		p.scanTypedefs,
		p.scanFunctions,
		p.scanVariables,
	}

	for _, pass := range passes {
		if err := pass(); err != nil {
			return err
		}
	}

	return p.checkLeftover()
}

func (p *parser) group(m []int, i int) string {
	lo, hi := m[2*i], m[2*i+1]
	if lo < 0 {
		return ""
	}

	return string(p.src[lo:hi])
}

func (p *parser) blank(lo, hi int) {
	for i := lo; i < hi; i++ {
		if p.src[i] != '\n' {
			p.src[i] = ' '
		}
	}
}

func (p *parser) scanMarkers() error {
	for _, m := range markerRe.FindAllSubmatchIndex(p.src, -1) {
		tag, target := p.group(m, 1), p.group(m, 2)

		p.table.addSymbol(&Symbol{
			Name:   MarkerPrefix + tag + "__" + target,
			Kind:   SymbolMarker,
			Marker: &Marker{Tag: tag, Target: target},
			offset: m[0],
		})
		p.blank(m[0], m[1])
	}

	return nil
}

func (p *parser) scanDefines() error {
	for _, m := range defineRe.FindAllSubmatchIndex(p.src, -1) {
		name, literal, suffix := p.group(m, 1), p.group(m, 2), p.group(m, 3)

		c, err := parseConstant(name, literal, suffix)
		if err != nil {
			return err
		}

		p.table.consts[name] = c
		p.table.addSymbol(&Symbol{Name: name, Kind: SymbolConstant, offset: m[0]})
		p.blank(m[0], m[1])
	}

	return nil
}

// scanDirectives drops the preprocessor lines left after the #define pass
// (includes, guards, pragmas). They carry no declarations.
func (p *parser) scanDirectives() error {
	for _, m := range directiveRe.FindAllSubmatchIndex(p.src, -1) {
		p.blank(m[0], m[1])
	}

	return nil
}

func (p *parser) scanAggregates() error {
	for _, m := range aggregateRe.FindAllSubmatchIndex(p.src, -1) {
		hasTypedef := p.group(m, 1) != ""
		kw, tag, body, alias := p.group(m, 2), p.group(m, 3), p.group(m, 4), p.group(m, 5)

		kind := aggregateKind(kw)

		if !hasTypedef && alias != "" {
			return fmt.Errorf("definition of %s %s declares a variable inline, which is not supported", kw, tag)
		}
		if tag == "" && alias == "" {
			return fmt.Errorf("%s definition has neither tag nor typedef name", kw)
		}

		var node *ctype.Node
		if tag != "" {
			node = p.table.internTag(kind, tag)
		} else {
			node = &ctype.Node{Kind: kind, Anonymous: true}
		}

		if kind == ctype.KindEnum {
			members, err := p.parseEnumerators(body)
			if err != nil {
				return fmt.Errorf("enum %s: %w", tag+alias, err)
			}
			node.Enumerators = members

			// Enumerators are integer constants in their own right.
			for _, e := range members {
				p.table.consts[e.Name] = &Constant{Name: e.Name, Type: ctype.Int(), Value: e.Value}
			}
		} else {
			fields, err := p.parseFields(body)
			if err != nil {
				return fmt.Errorf("%s %s: %w", kw, tag+alias, err)
			}
			node.Fields = fields
		}

		if tag != "" {
			p.table.addSymbol(&Symbol{Name: tag, Kind: SymbolTag, offset: m[0]})
		}

		if hasTypedef {
			td := ctype.TypedefOf(alias, node)
			p.table.typedefs[alias] = td
			p.table.addSymbol(&Symbol{Name: alias, Kind: SymbolTypedef, offset: m[0]})
		}

		p.blank(m[0], m[1])
	}

	return nil
}

func (p *parser) scanTypedefs() error {
	for _, m := range typedefRe.FindAllSubmatchIndex(p.src, -1) {
		src, name := p.group(m, 1), p.group(m, 2)

		// The separator between the type and alias groups may consume a
		// star when the two are written without a space ("char *alias").
		typeStr := src
		if sep := string(p.src[m[3]:m[4]]); strings.Contains(sep, "*") {
			typeStr += " *"
		}

		underlying, err := p.parseType(typeStr)
		if err != nil {
			return fmt.Errorf("typedef %s: %w", name, err)
		}

		p.table.typedefs[name] = ctype.TypedefOf(name, underlying)
		p.table.addSymbol(&Symbol{Name: name, Kind: SymbolTypedef, offset: m[0]})
		p.blank(m[0], m[1])
	}

	return nil
}

func (p *parser) scanFunctions() error {
	for _, m := range funcRe.FindAllSubmatchIndex(p.src, -1) {
		ret, name, params, asm := p.group(m, 1), p.group(m, 2), p.group(m, 3), p.group(m, 4)

		result, err := p.parseType(ret)
		if err != nil {
			return fmt.Errorf("function %s: return type: %w", name, err)
		}

		ps, variadic, err := p.parseParams(params)
		if err != nil {
			return fmt.Errorf("function %s: %w", name, err)
		}

		p.table.decls[name] = &ctype.Decl{
			Name:    name,
			Type:    ctype.Func(result, ps, variadic),
			AsmName: asm,
		}
		p.table.addSymbol(&Symbol{Name: name, Kind: SymbolFunction, offset: m[0]})
		p.blank(m[0], m[1])
	}

	return nil
}

func (p *parser) scanVariables() error {
	for _, m := range varRe.FindAllSubmatchIndex(p.src, -1) {
		storage, typeStr, name, dims := p.group(m, 1), p.group(m, 2), p.group(m, 3), p.group(m, 4)

		typ, err := p.parseType(typeStr)
		if err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}

		_, dimList := trimArraySuffix("x" + dims)

		typ, err = applyArraySuffix(typ, dimList)
		if err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}

		st := ctype.StorageNone
		switch storage {
		case "extern":
			st = ctype.StorageExtern
		case "static":
			st = ctype.StorageStatic
		}

		p.table.decls[name] = &ctype.Decl{Name: name, Type: typ, Storage: st}
		p.table.addSymbol(&Symbol{Name: name, Kind: SymbolVariable, offset: m[0]})
		p.blank(m[0], m[1])
	}

	return nil
}

func (p *parser) checkLeftover() error {
	for i, line := range strings.Split(string(p.src), "\n") {
		if strings.TrimSpace(line) != "" {
			return fmt.Errorf("unrecognized declaration at line %d: %q", i+1, strings.TrimSpace(line))
		}
	}

	return nil
}

var scalarKinds = map[string]ctype.TypeKind{
	"void":                   ctype.KindVoid,
	"_Bool":                  ctype.KindBool,
	"char":                   ctype.KindChar,
	"signed char":            ctype.KindSChar,
	"unsigned char":          ctype.KindUChar,
	"short":                  ctype.KindShort,
	"short int":              ctype.KindShort,
	"signed short":           ctype.KindShort,
	"unsigned short":         ctype.KindUShort,
	"unsigned short int":     ctype.KindUShort,
	"int":                    ctype.KindInt,
	"signed":                 ctype.KindInt,
	"signed int":             ctype.KindInt,
	"unsigned":               ctype.KindUInt,
	"unsigned int":           ctype.KindUInt,
	"long":                   ctype.KindLong,
	"long int":               ctype.KindLong,
	"signed long":            ctype.KindLong,
	"unsigned long":          ctype.KindULong,
	"unsigned long int":      ctype.KindULong,
	"long long":              ctype.KindLongLong,
	"long long int":          ctype.KindLongLong,
	"unsigned long long":     ctype.KindULongLong,
	"unsigned long long int": ctype.KindULongLong,
	"float":                  ctype.KindFloat,
	"double":                 ctype.KindDouble,
	"long double":            ctype.KindLongDouble,
}

// parseType resolves a declaration-specifier string like "const char *" or
// "struct timespec" into a node, interning tag and typedef references.
func (p *parser) parseType(s string) (*ctype.Node, error) {
	toks := strings.Fields(strings.ReplaceAll(s, "*", " * "))
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty type specifier")
	}

	var konst, volatile bool

	i := 0
	for i < len(toks) && (toks[i] == "const" || toks[i] == "volatile") {
		konst = konst || toks[i] == "const"
		volatile = volatile || toks[i] == "volatile"
		i++
	}
	if i == len(toks) {
		return nil, fmt.Errorf("type %q has qualifiers but no base type", s)
	}

	var base *ctype.Node
	switch toks[i] {
	case "struct", "union", "enum":
		if i+1 >= len(toks) || !identRe.MatchString(toks[i+1]) {
			return nil, fmt.Errorf("%s reference in %q without a tag", toks[i], s)
		}
		base = p.table.internTag(aggregateKind(toks[i]), toks[i+1])
		i += 2

	default:
		j := i
		for j < len(toks) && isBaseWord(toks[j]) {
			j++
		}

		if j > i {
			key := strings.Join(toks[i:j], " ")
			kind, ok := scalarKinds[key]
			if !ok {
				return nil, fmt.Errorf("unknown scalar type %q", key)
			}
			base = ctype.Scalar(kind)
			i = j
		} else {
			td, ok := p.table.Typedef(toks[i])
			if !ok {
				return nil, fmt.Errorf("unknown type name %q", toks[i])
			}
			base = td
			i++
		}
	}

	node := ctype.Qual(base, konst, volatile)

	for ; i < len(toks); i++ {
		switch toks[i] {
		case "*":
			node = ctype.Ptr(node)
		case "const":
			node = ctype.Qual(node, true, false)
		case "volatile":
			node = ctype.Qual(node, false, true)
		default:
			return nil, fmt.Errorf("unexpected token %q in type %q", toks[i], s)
		}
	}

	return node, nil
}

func (p *parser) parseFields(body string) ([]ctype.Field, error) {
	var fields []ctype.Field

	for _, line := range strings.Split(body, ";") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, typ, err := p.parseMemberDecl(line)
		if err != nil {
			return nil, err
		}

		fields = append(fields, ctype.Field{Name: name, Type: typ})
	}

	return fields, nil
}

// parseMemberDecl splits a member like "const char *name[10]" into its name
// and type.
func (p *parser) parseMemberDecl(s string) (string, *ctype.Node, error) {
	s, dims := trimArraySuffix(s)

	toks := strings.Fields(strings.ReplaceAll(s, "*", " * "))
	if len(toks) < 2 {
		return "", nil, fmt.Errorf("member %q has no name", s)
	}

	name := toks[len(toks)-1]
	if !identRe.MatchString(name) {
		return "", nil, fmt.Errorf("member %q has no name", s)
	}

	typ, err := p.parseType(strings.Join(toks[:len(toks)-1], " "))
	if err != nil {
		return "", nil, err
	}

	typ, err = applyArraySuffix(typ, dims)
	if err != nil {
		return "", nil, err
	}

	return name, typ, nil
}

func (p *parser) parseEnumerators(body string) ([]ctype.Enumerator, error) {
	var members []ctype.Enumerator
	next := int64(0)

	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, val := part, next
		if idx := strings.Index(part, "="); idx != -1 {
			name = strings.TrimSpace(part[:idx])

			v, err := parseIntLiteral(strings.TrimSpace(part[idx+1:]))
			if err != nil {
				return nil, fmt.Errorf("enumerator %s: %w", name, err)
			}
			val = v
		}

		if !identRe.MatchString(name) {
			return nil, fmt.Errorf("invalid enumerator name %q", name)
		}

		members = append(members, ctype.Enumerator{Name: name, Value: val})
		next = val + 1
	}

	return members, nil
}

func (p *parser) parseParams(s string) ([]ctype.Param, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil, false, nil
	}

	var params []ctype.Param
	variadic := false

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "..." {
			variadic = true
			continue
		}

		name, typ, err := p.parseParamDecl(part)
		if err != nil {
			return nil, false, err
		}

		params = append(params, ctype.Param{Name: name, Type: typ})
	}

	return params, variadic, nil
}

// parseParamDecl splits "const char *path" into name and type. The trailing
// identifier is the parameter name unless it reads as part of the type.
func (p *parser) parseParamDecl(s string) (string, *ctype.Node, error) {
	toks := strings.Fields(strings.ReplaceAll(s, "*", " * "))

	name := ""
	if len(toks) >= 2 {
		last := toks[len(toks)-1]
		if identRe.MatchString(last) && !p.isTypeWord(last) {
			name = last
			toks = toks[:len(toks)-1]
		}
	}

	typ, err := p.parseType(strings.Join(toks, " "))
	if err != nil {
		return "", nil, err
	}

	return name, typ, nil
}

func (p *parser) isTypeWord(w string) bool {
	switch w {
	case "void", "_Bool", "char", "short", "int", "long", "float", "double",
		"signed", "unsigned", "const", "volatile", "struct", "union", "enum":
		return true
	}

	_, ok := p.table.typedefs[w]

	return ok
}

func aggregateKind(kw string) ctype.TypeKind {
	switch kw {
	case "union":
		return ctype.KindUnion
	case "enum":
		return ctype.KindEnum
	default:
		return ctype.KindStruct
	}
}

func isBaseWord(w string) bool {
	switch w {
	case "void", "_Bool", "char", "short", "int", "long", "float", "double",
		"signed", "unsigned":
		return true
	default:
		return false
	}
}

// trimArraySuffix peels "[10][2]" suffixes off a declarator, returning the
// remaining text and the dimensions left to right.
func trimArraySuffix(s string) (string, []string) {
	var dims []string

	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, "]") {
		idx := strings.LastIndex(s, "[")
		if idx < 0 {
			break
		}

		dims = append([]string{strings.TrimSpace(s[idx+1 : len(s)-1])}, dims...)
		s = strings.TrimSpace(s[:idx])
	}

	return s, dims
}

func applyArraySuffix(t *ctype.Node, dims []string) (*ctype.Node, error) {
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] == "" {
			t = ctype.IncompleteArrayOf(t)
			continue
		}

		n, err := strconv.Atoi(dims[i])
		if err != nil {
			return nil, fmt.Errorf("invalid array length %q", dims[i])
		}
		t = ctype.ArrayOf(t, n)
	}

	return t, nil
}

func parseIntLiteral(s string) (int64, error) {
	s = strings.TrimRight(s, "uUlL")

	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", s)
	}

	return v, nil
}

func parseConstant(name, literal, suffix string) (*Constant, error) {
	if strings.ContainsAny(suffix, "uU") {
		v, err := strconv.ParseUint(literal, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("constant %s: invalid unsigned literal %q", name, literal)
		}

		typ := ctype.Scalar(ctype.KindUInt)
		if !common.InRange(0, v, math.MaxUint32) {
			typ = ctype.Scalar(ctype.KindULongLong)
		}

		return &Constant{Name: name, Type: typ, UValue: v, Unsigned: true}, nil
	}

	v, err := strconv.ParseInt(literal, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("constant %s: invalid integer literal %q", name, literal)
	}

	typ := ctype.Int()
	if !common.InRange(math.MinInt32, v, math.MaxInt32) {
		typ = ctype.Scalar(ctype.KindLongLong)
	}

	return &Constant{Name: name, Type: typ, Value: v}, nil
}
