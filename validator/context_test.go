package validator

import (
	"testing"

	"github.com/erraggy/oascheck/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextError(t *testing.T) {
	ctx := NewContext(struct{}{}, NoFlags)
	ctx.Error("#.info", ".title: must not be empty")
	ctx.Error("#.info.title", "must not be empty")
	ctx.Errorf("#.paths", "`%s` must start with `/`", "pets")

	assert.Equal(t, []string{
		"#.info.title: must not be empty",
		"#.info.title: must not be empty",
		"#.paths: `pets` must start with `/`",
	}, ctx.Errors())
}

func TestContextVisit(t *testing.T) {
	ctx := NewContext(struct{}{}, NoFlags)
	assert.False(t, ctx.IsVisited("#/components/schemas/Pet"))
	assert.True(t, ctx.Visit("#/components/schemas/Pet"))
	assert.False(t, ctx.Visit("#/components/schemas/Pet"))
	assert.True(t, ctx.IsVisited("#/components/schemas/Pet"))
	assert.Equal(t, 1, ctx.VisitedCount())
}

func TestContextOperations(t *testing.T) {
	ctx := NewContext(struct{}{}, NoFlags)
	assert.True(t, ctx.RegisterOperation("listPets"))
	assert.False(t, ctx.RegisterOperation("listPets"))
	assert.True(t, ctx.HasOperation("listPets"))
	assert.False(t, ctx.HasOperation("getPet"))

	// Identifiers and visited paths do not share a namespace.
	assert.False(t, ctx.IsVisited("listPets"))
	assert.True(t, ctx.Visit("getPet"))
	assert.False(t, ctx.HasOperation("getPet"))
}

func TestContextErr(t *testing.T) {
	ctx := NewContext(struct{}{}, DefaultFlags)
	require.NoError(t, ctx.Err())
	assert.True(t, ctx.Has(IgnoreUnusedPathItems))
	assert.False(t, ctx.Has(IgnoreUnusedTags))

	ctx.Error("#", "first")
	ctx.Error("#", "second")
	err := ctx.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrValidation)
	assert.Equal(t, "2 errors found:\n- #: first\n- #: second\n", err.Error())

	// The returned error does not alias the context.
	ctx.Error("#", "third")
	var vErr *oaserrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 2)
}
