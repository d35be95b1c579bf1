// Package extract runs one extraction pass over a parsed translation unit:
// it enumerates the cdecl_* marker symbols, resolves each to its target
// declaration, and composes the C declaration text through a shared
// aggregate-deduplication set.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"cdecl-generator/cdecl"
	"cdecl-generator/ctype"
	"cdecl-generator/internal/common"
	"cdecl-generator/internal/header"
	"cdecl-generator/internal/overrides"
	"cdecl-generator/options"
)

// Declaration is one extracted output entry, without the trailing statement
// terminator.
type Declaration struct {
	Name     string
	Category options.CategoryEnum
	Text     string
}

// Pass extracts the declarations tagged in one translation unit.
type Pass struct {
	table      *header.Table
	overrides  overrides.Map
	categories options.CategoryEnum
}

func New(table *header.Table, ov overrides.Map, categories options.CategoryEnum) *Pass {
	return &Pass{
		table:      table,
		overrides:  ov,
		categories: categories,
	}
}

var markerCategories = map[string]options.CategoryEnum{
	"type":   options.CategoryType,
	"struct": options.CategoryStruct,
	"union":  options.CategoryUnion,
	"enum":   options.CategoryEnumeration,
	"var":    options.CategoryVariable,
	"func":   options.CategoryFunction,
	"const":  options.CategoryConstant,
}

// Run selects the marker symbols and composes their declarations.
//
// Selection walks the symbol table in reverse declaration order matching the
// cdecl_ prefix; composition then runs in declaration order, so the first
// textual use of a named aggregate is the one that carries its definition.
func (p *Pass) Run() ([]Declaration, error) {
	var markers []*header.Symbol
	for _, sym := range common.Reversed(p.table.Symbols) {
		if sym.Kind != header.SymbolMarker || !strings.HasPrefix(sym.Name, header.MarkerPrefix) {
			continue
		}

		markers = append([]*header.Symbol{sym}, markers...)
	}

	if common.IsEmpty(markers) {
		return nil, nil
	}

	var out []Declaration
	defined := &cdecl.Defined{}

	for _, sym := range markers {
		m := sym.Marker

		category, ok := markerCategories[m.Tag]
		if !ok {
			return nil, fmt.Errorf("unknown marker tag cdecl_%s", m.Tag)
		}
		if !p.categories.Has(category) {
			continue
		}

		text, err := p.compose(m, defined)
		if err != nil {
			return nil, err
		}

		out = append(out, Declaration{Name: m.Target, Category: category, Text: text})
	}

	return out, nil
}

func (p *Pass) compose(m *header.Marker, defined *cdecl.Defined) (string, error) {
	switch m.Tag {
	case "type":
		return p.composeTypedef(m.Target, defined)
	case "struct":
		return p.composeTag(ctype.KindStruct, m.Target, defined)
	case "union":
		return p.composeTag(ctype.KindUnion, m.Target, defined)
	case "enum":
		return p.composeTag(ctype.KindEnum, m.Target, defined)
	case "var", "func":
		return p.composeDecl(m, defined)
	case "const":
		return p.formatConstant(m.Target)
	default:
		return "", fmt.Errorf("unknown marker tag cdecl_%s", m.Tag)
	}
}

func (p *Pass) composeTypedef(name string, defined *cdecl.Defined) (string, error) {
	td, ok := p.table.Typedef(name)
	if !ok {
		return "", fmt.Errorf("cdecl_type(%s): no such typedef%s", name, p.didYouMean(name))
	}

	var resolver cdecl.NameResolver
	if display, ok := p.overrides[name]; ok {
		resolver = cdecl.WithSubjectName(nil, td, display)
	}

	return cdecl.New(resolver, defined).ComposeTypedef(td)
}

func (p *Pass) composeTag(kind ctype.TypeKind, name string, defined *cdecl.Defined) (string, error) {
	node, ok := p.table.Tag(kind, name)
	if !ok {
		return "", fmt.Errorf("cdecl_%s(%s): no such %s%s",
			kind.Keyword(), name, kind.Keyword(), p.didYouMean(name))
	}

	var resolver cdecl.NameResolver
	if display, ok := p.overrides[name]; ok {
		resolver = cdecl.WithSubjectName(nil, node, display)
	}

	return cdecl.New(resolver, defined).ComposeType(node, "")
}

func (p *Pass) composeDecl(m *header.Marker, defined *cdecl.Defined) (string, error) {
	decl, ok := p.table.Decl(m.Target)
	if !ok {
		return "", fmt.Errorf("cdecl_%s(%s): no such declaration%s", m.Tag, m.Target, p.didYouMean(m.Target))
	}

	var resolver cdecl.NameResolver

	d := *decl
	if display, ok := p.overrides[d.Name]; ok {
		// Renaming the declaration leaves the link-time symbol behind;
		// pin it with an assembler label unless the header already did.
		if d.AsmName == "" {
			d.AsmName = d.Name
		}
		resolver = cdecl.WithSubjectName(nil, &d, display)
	}

	return cdecl.New(resolver, defined).ComposeDecl(&d)
}

// formatConstant renders a tagged integer constant as a basic assignment,
// using the resolved type's recorded signedness. This path never touches the
// declarator composer.
func (p *Pass) formatConstant(name string) (string, error) {
	c, ok := p.table.Const(name)
	if !ok {
		return "", fmt.Errorf("cdecl_const(%s): no such constant%s", name, p.didYouMean(name))
	}

	display := name
	if ov, ok := p.overrides[name]; ok {
		display = ov
	}

	value := strconv.FormatInt(c.Value, 10)
	if c.Unsigned {
		value = strconv.FormatUint(c.UValue, 10)
	}

	keyword := "int"
	if c.Type != nil {
		if bare := c.Type.Unqualify(); bare != nil && bare.Kind.IsScalar() {
			keyword = bare.Kind.Keyword()
		}
	}

	return "static const " + keyword + " " + display + " = " + value, nil
}
