package validator

import (
	"testing"

	"github.com/erraggy/oascheck/parser"
	"github.com/stretchr/testify/assert"
)

func TestSweep(t *testing.T) {
	items := map[string]parser.RefOr[testItem]{
		"b":     item("B", ""),
		"a":     item("", ""),
		"a pet": item("P", ""),
	}
	table := Table{Field: "items", Prefix: testPrefix, Flag: IgnoreUnusedSchemas, CheckNames: true}

	t.Run("unused entries are reported and still validated", func(t *testing.T) {
		doc := &testDoc{Items: items}
		ctx := NewContext(doc, NoFlags)
		ctx.Visit("#/items/b")
		Sweep(ctx, table, items, "#", doc.resolve)
		assert.Equal(t, []string{
			"#/items/a: unused",
			"#.items[a].name: must not be empty",
			"#/items/a pet: unused",
			"#.items[a pet]: must match pattern `^[a-zA-Z0-9.\\-_]+$`, found `a pet`",
		}, ctx.Errors())
	})

	t.Run("unused entries are not marked visited", func(t *testing.T) {
		doc := &testDoc{Items: items}
		ctx := NewContext(doc, IgnoreUnusedSchemas)
		Sweep(ctx, table, items, "#", doc.resolve)
		for _, name := range []string{"a", "a pet", "b"} {
			assert.False(t, ctx.IsVisited(testPrefix+name), name)
		}
	})

	t.Run("flag suppresses unused", func(t *testing.T) {
		doc := &testDoc{Items: items}
		ctx := NewContext(doc, IgnoreUnusedSchemas)
		Sweep(ctx, table, items, "#", doc.resolve)
		assert.Equal(t, []string{
			"#.items[a].name: must not be empty",
			"#.items[a pet]: must match pattern `^[a-zA-Z0-9.\\-_]+$`, found `a pet`",
		}, ctx.Errors())
	})
}

func TestSweepValues(t *testing.T) {
	values := map[string]testItem{"z": {Name: "Z"}, "y": {}}
	ctx := NewContext(&testDoc{}, NoFlags)
	SweepValues(ctx, Table{Field: "defs", Prefix: "#/defs/", Flag: IgnoreUnusedSchemas}, values, "#")
	assert.Equal(t, []string{
		"#/defs/y: unused",
		"#.defs[y].name: must not be empty",
		"#/defs/z: unused",
	}, ctx.Errors())
}

func TestSweepKeys(t *testing.T) {
	scopes := map[string]string{"write": "", "read": ""}
	prefix := "#/components/securitySchemes/oauth/"

	ctx := NewContext(struct{}{}, NoFlags)
	ctx.Visit(prefix + "read")
	SweepKeys(ctx, scopes, prefix, IgnoreUnusedSecuritySchemes)
	assert.Equal(t, []string{"#/components/securitySchemes/oauth/write: unused"}, ctx.Errors())

	ctx = NewContext(struct{}{}, IgnoreUnusedSecuritySchemes)
	SweepKeys(ctx, scopes, prefix, IgnoreUnusedSecuritySchemes)
	assert.Empty(t, ctx.Errors())
}
