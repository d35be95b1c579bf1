package cdecl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdecl-generator/cdecl"
	"cdecl-generator/ctype"
)

func ExampleComposer_ComposeType() {
	c := cdecl.New(nil, nil)

	show := func(t *ctype.Node, name string) {
		s, err := c.ComposeType(t, name)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(s)
	}

	charT := ctype.Scalar(ctype.KindChar)

	// function returning pointer vs pointer to function
	show(ctype.Func(ctype.Ptr(ctype.Int()), nil, false), "f")
	show(ctype.Ptr(ctype.Func(ctype.Int(), nil, false)), "f")

	// array of pointers vs pointer to array
	show(ctype.ArrayOf(ctype.Ptr(charT), 10), "a")
	show(ctype.Ptr(ctype.ArrayOf(charT, 10)), "a")

	// qualifier on the pointer vs on the pointee
	show(ctype.Const(ctype.Ptr(ctype.Int())), "p")
	show(ctype.Ptr(ctype.Const(charT)), "s")

	// abstract form: no declarator name
	show(ctype.Ptr(ctype.Const(charT)), "")

	// Output:
	// int *f(void)
	// int (*f)(void)
	// char *a[10]
	// char (*a)[10]
	// int *const p
	// const char *s
	// const char *
}

func ExampleComposer_ComposeTypedef() {
	c := cdecl.New(nil, nil)

	cb := ctype.TypedefOf("callback_t",
		ctype.Ptr(ctype.Func(ctype.Int(), []ctype.Param{{Type: ctype.Int()}}, false)))

	s, _ := c.ComposeTypedef(cb)
	fmt.Println(s)

	size := ctype.TypedefOf("size_t", ctype.Scalar(ctype.KindULong))
	s, _ = c.ComposeTypedef(size)
	fmt.Println(s)

	// Output:
	// typedef int (*callback_t)(int)
	// typedef unsigned long size_t
}

func ExampleComposer_ComposeDecl() {
	c := cdecl.New(nil, nil)

	errno := &ctype.Decl{
		Name:    "errno",
		Type:    ctype.Int(),
		Storage: ctype.StorageExtern,
	}
	s, _ := c.ComposeDecl(errno)
	fmt.Println(s)

	base := &ctype.Decl{
		Name: "basename",
		Type: ctype.Func(ctype.Ptr(ctype.Scalar(ctype.KindChar)),
			[]ctype.Param{{Name: "path", Type: ctype.Ptr(ctype.Scalar(ctype.KindChar))}}, false),
		AsmName: "__xpg_basename",
	}
	s, _ = c.ComposeDecl(base)
	fmt.Println(s)

	// no label when the symbol already matches the display name
	base.AsmName = "basename"
	s, _ = c.ComposeDecl(base)
	fmt.Println(s)

	// Output:
	// extern int errno
	// char *basename(char *path) __asm__("__xpg_basename")
	// char *basename(char *path)
}

func TestComposeFunctions(t *testing.T) {
	t.Parallel()

	c := cdecl.New(nil, nil)

	t.Run("variadic with leading params", func(t *testing.T) {
		t.Parallel()

		fn := ctype.Func(ctype.Int(),
			[]ctype.Param{{Name: "fmt", Type: ctype.Ptr(ctype.Const(ctype.Scalar(ctype.KindChar)))}},
			true)

		s, err := c.ComposeType(fn, "printf")
		require.NoError(t, err)
		assert.Equal(t, "int printf(const char *fmt, ...)", s)
	})

	t.Run("variadic without params", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(ctype.Func(ctype.Void(), nil, true), "f")
		require.NoError(t, err)
		assert.Equal(t, "void f(...)", s)
	})

	t.Run("unnamed parameters", func(t *testing.T) {
		t.Parallel()

		fn := ctype.Func(ctype.Void(),
			[]ctype.Param{{Type: ctype.Int()}, {Type: ctype.Ptr(ctype.Void())}}, false)

		s, err := c.ComposeType(fn, "g")
		require.NoError(t, err)
		assert.Equal(t, "void g(int, void *)", s)
	})

	t.Run("function pointer parameter", func(t *testing.T) {
		t.Parallel()

		cmp := ctype.Ptr(ctype.Func(ctype.Int(),
			[]ctype.Param{
				{Type: ctype.Ptr(ctype.Const(ctype.Void()))},
				{Type: ctype.Ptr(ctype.Const(ctype.Void()))},
			}, false))
		fn := ctype.Func(ctype.Void(), []ctype.Param{{Name: "cmp", Type: cmp}}, false)

		s, err := c.ComposeType(fn, "sort")
		require.NoError(t, err)
		assert.Equal(t, "void sort(int (*cmp)(const void *, const void *))", s)
	})
}

func TestComposeArrays(t *testing.T) {
	t.Parallel()

	c := cdecl.New(nil, nil)

	t.Run("incomplete array", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(ctype.IncompleteArrayOf(ctype.Int()), "tab")
		require.NoError(t, err)
		assert.Equal(t, "int tab[]", s)
	})

	t.Run("nested arrays", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(ctype.ArrayOf(ctype.ArrayOf(ctype.Int(), 4), 3), "m")
		require.NoError(t, err)
		assert.Equal(t, "int m[3][4]", s)
	})

	t.Run("array of const pointers", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(
			ctype.ArrayOf(ctype.Const(ctype.Ptr(ctype.Scalar(ctype.KindChar))), 2), "v")
		require.NoError(t, err)
		assert.Equal(t, "char *const v[2]", s)
	})

	t.Run("pointer to incomplete array of function pointers", func(t *testing.T) {
		t.Parallel()

		elem := ctype.Ptr(ctype.Func(ctype.Void(), nil, false))
		s, err := c.ComposeType(ctype.Ptr(ctype.IncompleteArrayOf(elem)), "h")
		require.NoError(t, err)
		assert.Equal(t, "void (*(*h)[])(void)", s)
	})
}

func TestComposeQualifiers(t *testing.T) {
	t.Parallel()

	c := cdecl.New(nil, nil)

	t.Run("const volatile scalar", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(ctype.Qual(ctype.Int(), true, true), "x")
		require.NoError(t, err)
		assert.Equal(t, "const volatile int x", s)
	})

	t.Run("nested qualifiers collapse", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(
			ctype.Qual(ctype.Qual(ctype.Int(), true, false), false, true), "x")
		require.NoError(t, err)
		assert.Equal(t, "const volatile int x", s)
	})

	t.Run("const pointer to const", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(
			ctype.Const(ctype.Ptr(ctype.Const(ctype.Scalar(ctype.KindChar)))), "p")
		require.NoError(t, err)
		assert.Equal(t, "const char *const p", s)
	})

	t.Run("volatile pointer declarator keeps parens", func(t *testing.T) {
		t.Parallel()

		s, err := c.ComposeType(
			ctype.Qual(ctype.Ptr(ctype.Func(ctype.Int(), nil, false)), false, true), "f")
		require.NoError(t, err)
		assert.Equal(t, "int (*volatile f)(void)", s)
	})
}

func TestComposeAggregates(t *testing.T) {
	t.Parallel()

	t.Run("anonymous struct expands at every use", func(t *testing.T) {
		t.Parallel()

		c := cdecl.New(nil, nil)
		anon := ctype.AnonStructOf(ctype.Field{Name: "x", Type: ctype.Int()})

		first, err := c.ComposeType(anon, "a")
		require.NoError(t, err)
		second, err := c.ComposeType(anon, "b")
		require.NoError(t, err)

		assert.Equal(t, "struct { int x; } a", first)
		assert.Equal(t, "struct { int x; } b", second)
	})

	t.Run("named struct defines once per shared set", func(t *testing.T) {
		t.Parallel()

		var defined cdecl.Defined
		c := cdecl.New(nil, &defined)

		point := ctype.StructOf("point",
			ctype.Field{Name: "x", Type: ctype.Int()},
			ctype.Field{Name: "y", Type: ctype.Int()})

		first, err := c.ComposeType(point, "a")
		require.NoError(t, err)
		second, err := c.ComposeType(point, "b")
		require.NoError(t, err)

		assert.Equal(t, "struct point { int x; int y; } a", first)
		assert.Equal(t, "struct point b", second)
		assert.Equal(t, 1, defined.Len())
	})

	t.Run("fresh set per call without sharing", func(t *testing.T) {
		t.Parallel()

		c := cdecl.New(nil, nil)
		point := ctype.StructOf("point", ctype.Field{Name: "x", Type: ctype.Int()})

		first, err := c.ComposeType(point, "a")
		require.NoError(t, err)
		second, err := c.ComposeType(point, "b")
		require.NoError(t, err)

		assert.Equal(t, first[:len(first)-1], second[:len(second)-1])
	})

	t.Run("failed composition leaves no marks in a shared set", func(t *testing.T) {
		t.Parallel()

		var defined cdecl.Defined
		c := cdecl.New(nil, &defined)

		inner := ctype.StructOf("inner", ctype.Field{Name: "x", Type: ctype.Int()})
		outer := ctype.StructOf("outer",
			ctype.Field{Name: "in", Type: inner},
			ctype.Field{Name: "bad", Type: ctype.ArrayOf(ctype.Func(ctype.Int(), nil, false), 2)})

		_, err := c.ComposeType(outer, "o")
		require.Error(t, err)
		assert.Equal(t, 0, defined.Len())

		// the nested aggregate's definition was discarded with the failed
		// call, so the next use must carry it again
		s, err := c.ComposeType(inner, "i")
		require.NoError(t, err)
		assert.Equal(t, "struct inner { int x; } i", s)
	})

	t.Run("self-referential struct terminates", func(t *testing.T) {
		t.Parallel()

		c := cdecl.New(nil, nil)

		node := ctype.StructOf("node")
		node.Fields = []ctype.Field{{Name: "next", Type: ctype.Ptr(node)}}

		s, err := c.ComposeType(node, "head")
		require.NoError(t, err)
		assert.Equal(t, "struct node { struct node *next; } head", s)
	})

	t.Run("opaque struct renders as reference", func(t *testing.T) {
		t.Parallel()

		c := cdecl.New(nil, nil)

		s, err := c.ComposeType(ctype.Ptr(ctype.StructOf("lua_State")), "L")
		require.NoError(t, err)
		assert.Equal(t, "struct lua_State *L", s)
	})

	t.Run("enum body", func(t *testing.T) {
		t.Parallel()

		c := cdecl.New(nil, nil)

		color := ctype.EnumOf("color",
			ctype.Enumerator{Name: "RED", Value: 0},
			ctype.Enumerator{Name: "GREEN", Value: 1},
			ctype.Enumerator{Name: "BLUE", Value: 4})

		s, err := c.ComposeType(color, "")
		require.NoError(t, err)
		assert.Equal(t, "enum color { RED = 0, GREEN = 1, BLUE = 4 }", s)
	})

	t.Run("union body", func(t *testing.T) {
		t.Parallel()

		c := cdecl.New(nil, nil)

		u := ctype.UnionOf("value",
			ctype.Field{Name: "i", Type: ctype.Int()},
			ctype.Field{Name: "d", Type: ctype.Scalar(ctype.KindDouble)})

		s, err := c.ComposeType(u, "v")
		require.NoError(t, err)
		assert.Equal(t, "union value { int i; double d; } v", s)
	})
}

func TestComposeNameResolution(t *testing.T) {
	t.Parallel()

	t.Run("typedef reference uses resolved name", func(t *testing.T) {
		t.Parallel()

		size := ctype.TypedefOf("size_t", ctype.Scalar(ctype.KindULong))
		c := cdecl.New(cdecl.WithSubjectName(nil, size, "usize"), nil)

		s, err := c.ComposeType(size, "n")
		require.NoError(t, err)
		assert.Equal(t, "usize n", s)
	})

	t.Run("typedef declaration renames the alias", func(t *testing.T) {
		t.Parallel()

		size := ctype.TypedefOf("size_t", ctype.Scalar(ctype.KindULong))
		c := cdecl.New(cdecl.WithSubjectName(nil, size, "usize"), nil)

		s, err := c.ComposeTypedef(size)
		require.NoError(t, err)
		assert.Equal(t, "typedef unsigned long usize", s)
	})

	t.Run("renamed decl keeps its symbol through the label", func(t *testing.T) {
		t.Parallel()

		d := &ctype.Decl{
			Name:    "gettime",
			Type:    ctype.Func(ctype.Int(), nil, false),
			AsmName: "gettime",
		}
		c := cdecl.New(cdecl.WithSubjectName(nil, d, "clock_gettime"), nil)

		s, err := c.ComposeDecl(d)
		require.NoError(t, err)
		assert.Equal(t, `int clock_gettime(void) __asm__("gettime")`, s)
	})

	t.Run("inconsistent resolver is ambiguous", func(t *testing.T) {
		t.Parallel()

		size := ctype.TypedefOf("size_t", ctype.Scalar(ctype.KindULong))

		calls := 0
		flipping := func(node any) (string, bool) {
			if node != size {
				return "", false
			}
			calls++
			if calls == 1 {
				return "first", true
			}
			return "second", true
		}

		// the typedef occurs twice in one composition
		fn := ctype.Func(size, []ctype.Param{{Name: "n", Type: size}}, false)

		c := cdecl.New(flipping, nil)
		_, err := c.ComposeType(fn, "f")

		var ambErr *cdecl.AmbiguousNameError
		require.ErrorAs(t, err, &ambErr)
		assert.Equal(t, "size_t", ambErr.Recorded)
		assert.Equal(t, "first", ambErr.First)
		assert.Equal(t, "second", ambErr.Second)
	})
}

func TestComposeErrors(t *testing.T) {
	t.Parallel()

	c := cdecl.New(nil, nil)

	t.Run("array of functions", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(
			ctype.ArrayOf(ctype.Func(ctype.Int(), nil, false), 4), "a")

		var unsupported *cdecl.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("function returning array", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(
			ctype.Func(ctype.ArrayOf(ctype.Int(), 4), nil, false), "f")

		var unsupported *cdecl.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("function returning function", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(
			ctype.Func(ctype.Func(ctype.Int(), nil, false), nil, false), "f")

		var unsupported *cdecl.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(&ctype.Node{Kind: ctype.TypeKind(99)}, "x")

		var unsupported *cdecl.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("nil type", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(nil, "x")

		var unresolved *cdecl.UnresolvedTypeError
		require.ErrorAs(t, err, &unresolved)
	})

	t.Run("pointer without pointee", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(&ctype.Node{Kind: ctype.KindPointer}, "p")

		var unresolved *cdecl.UnresolvedTypeError
		require.ErrorAs(t, err, &unresolved)
	})

	t.Run("negative array length", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(ctype.ArrayOf(ctype.Int(), -7), "a")

		var unresolved *cdecl.UnresolvedTypeError
		require.ErrorAs(t, err, &unresolved)
	})

	t.Run("tagless non-anonymous struct", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeType(&ctype.Node{Kind: ctype.KindStruct}, "s")

		var unresolved *cdecl.UnresolvedTypeError
		require.ErrorAs(t, err, &unresolved)
	})

	t.Run("typedef of non-typedef", func(t *testing.T) {
		t.Parallel()

		_, err := c.ComposeTypedef(ctype.Int())
		require.Error(t, err)

		var unsupported *cdecl.UnsupportedTypeError
		assert.True(t, errors.As(err, &unsupported))
	})

	t.Run("no partial output on nested failure", func(t *testing.T) {
		t.Parallel()

		bad := ctype.StructOf("holder",
			ctype.Field{Name: "ok", Type: ctype.Int()},
			ctype.Field{Name: "bad", Type: ctype.ArrayOf(ctype.Func(ctype.Int(), nil, false), 2)})

		s, err := c.ComposeType(bad, "h")
		require.Error(t, err)
		assert.Empty(t, s)
	})
}
