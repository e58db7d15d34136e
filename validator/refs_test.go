package validator

import (
	"errors"
	"testing"

	"github.com/erraggy/oascheck/internal/pathutil"
	"github.com/erraggy/oascheck/oaserrors"
	"github.com/erraggy/oascheck/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "#/items/"

// testDoc is a minimal document: a table of reusable items and a list of
// item uses.
type testDoc struct {
	Items map[string]parser.RefOr[testItem]
	Uses  []parser.RefOr[testItem]
}

type testItem struct {
	Name string
	Next *parser.RefOr[testItem]
}

func (d *testDoc) resolve(ref string) (*testItem, error) {
	return Resolve(ref, testPrefix, d.Items)
}

func (d *testDoc) ValidateWithContext(ctx *Context[*testDoc], path string) {
	for i := range d.Uses {
		ValidateRefOr(ctx, &d.Uses[i], pathutil.Index(pathutil.Field(path, "uses"), i), d.resolve)
	}
	Sweep(ctx, Table{Field: "items", Prefix: testPrefix, Flag: IgnoreUnusedSchemas, CheckNames: true}, d.Items, path, d.resolve)
}

func (i *testItem) ValidateWithContext(ctx *Context[*testDoc], path string) {
	RequiredString(ctx, i.Name, pathutil.Field(path, "name"))
	ValidateRefOr(ctx, i.Next, pathutil.Field(path, "next"), ctx.Root.resolve)
}

func item(name string, next string) parser.RefOr[testItem] {
	it := &testItem{Name: name}
	if next != "" {
		ref := parser.NewRef[testItem](next)
		it.Next = &ref
	}
	return parser.NewValue(it)
}

func validationErrors(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var vErr *oaserrors.ValidationError
	require.True(t, errors.As(err, &vErr), "unexpected error type %T", err)
	return vErr.Errors
}

func TestResolve(t *testing.T) {
	table := map[string]parser.RefOr[testItem]{
		"a":     item("A", ""),
		"alias": parser.NewRef[testItem]("#/items/a"),
		"x":     parser.NewRef[testItem]("#/items/y"),
		"y":     parser.NewRef[testItem]("#/items/x"),
		"out":   parser.NewRef[testItem]("other.yaml#/a"),
		"a/b":   item("slash", ""),
	}

	tests := []struct {
		name     string
		ref      string
		want     string
		external bool
		notFound bool
	}{
		{name: "direct", ref: "#/items/a", want: "A"},
		{name: "reference to reference", ref: "#/items/alias", want: "A"},
		{name: "escaped name", ref: "#/items/a~1b", want: "slash"},
		{name: "missing", ref: "#/items/missing", notFound: true},
		{name: "wrong prefix", ref: "#/other/a", notFound: true},
		{name: "nested pointer", ref: "#/items/a/name", notFound: true},
		{name: "loop", ref: "#/items/x", notFound: true},
		{name: "chain leaves document", ref: "#/items/out", notFound: true},
		{name: "external", ref: "other.yaml#/items/a", external: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.ref, testPrefix, table)
			if tt.want != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Name)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrReference)
			assert.Equal(t, tt.external, errors.Is(err, oaserrors.ErrExternalReference))
		})
	}
}

func TestLookup(t *testing.T) {
	table := map[string]testItem{"a": {Name: "A"}}

	got, err := Lookup("#/items/a", testPrefix, table)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	_, err = Lookup("#/items/b", testPrefix, table)
	assert.ErrorIs(t, err, oaserrors.ErrReference)

	_, err = Lookup("x.yaml", testPrefix, table)
	assert.ErrorIs(t, err, oaserrors.ErrExternalReference)
}

func TestValidateRefOr(t *testing.T) {
	tests := []struct {
		name  string
		doc   *testDoc
		flags Flags
		want  []string
	}{
		{
			name: "cycle terminates",
			doc: &testDoc{
				Items: map[string]parser.RefOr[testItem]{
					"a": item("A", "#/items/b"),
					"b": item("B", "#/items/a"),
				},
				Uses: []parser.RefOr[testItem]{parser.NewRef[testItem]("#/items/a")},
			},
		},
		{
			name: "shared component reported once",
			doc: &testDoc{
				Items: map[string]parser.RefOr[testItem]{"a": item("", "")},
				Uses: []parser.RefOr[testItem]{
					parser.NewRef[testItem]("#/items/a"),
					parser.NewRef[testItem]("#/items/a"),
				},
			},
			want: []string{
				"#/items/a.name: must not be empty",
				"#.items[a].name: must not be empty",
			},
		},
		{
			name: "not found",
			doc:  &testDoc{Uses: []parser.RefOr[testItem]{parser.NewRef[testItem]("#/items/missing")}},
			want: []string{"#.uses[0].$ref: `#/items/missing` not found"},
		},
		{
			name: "external",
			doc:  &testDoc{Uses: []parser.RefOr[testItem]{parser.NewRef[testItem]("other.yaml#/a")}},
			want: []string{"#.uses[0].$ref: resolving of an external reference `other.yaml#/a` is not supported"},
		},
		{
			name:  "external ignored",
			doc:   &testDoc{Uses: []parser.RefOr[testItem]{parser.NewRef[testItem]("other.yaml#/a")}},
			flags: IgnoreExternalReferences,
		},
		{
			name: "empty reference",
			doc:  &testDoc{Uses: []parser.RefOr[testItem]{parser.NewRef[testItem]("")}},
			want: []string{"#.uses[0].$ref: must not be empty"},
		},
		{
			name: "inline value validated at holder path",
			doc:  &testDoc{Uses: []parser.RefOr[testItem]{item("", "")}},
			want: []string{"#.uses[0].name: must not be empty"},
		},
		{
			name: "reference loop reports not found",
			doc: &testDoc{
				Items: map[string]parser.RefOr[testItem]{
					"x": parser.NewRef[testItem]("#/items/y"),
					"y": parser.NewRef[testItem]("#/items/x"),
				},
				Uses: []parser.RefOr[testItem]{parser.NewRef[testItem]("#/items/x")},
			},
			want: []string{
				"#.uses[0].$ref: `#/items/x` not found",
				"#.items[x].$ref: `#/items/y` not found",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc, WithFlags(tt.flags))
			assert.Equal(t, tt.want, validationErrors(t, err))
		})
	}
}
