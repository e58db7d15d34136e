package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathTemplate(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{pattern: "/pets"},
		{pattern: "/pets/{petId}/owners/{ownerId}"},
		{pattern: "/files/{name}.{ext}"},
		{pattern: "/pets/{}", want: "empty parameter name"},
		{pattern: "/pets//toys", want: "consecutive slashes"},
		{pattern: "/pets#top", want: "reserved character `#`"},
		{pattern: "/pets?limit=1", want: "reserved character `?`"},
		{pattern: "/pets/{a{b}}", want: "nested braces at position 8"},
		{pattern: "/pets/id}", want: "unexpected closing brace at position 8"},
		{pattern: "/pets/{id", want: "unclosed brace"},
		{pattern: "/a/{id}/b/{id}", want: "duplicate parameter name `id`"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ctx := newTestContext(NoFlags)
			PathTemplate(ctx, tt.pattern, "#.paths["+tt.pattern+"]")
			if tt.want == "" {
				assert.Empty(t, ctx.Errors())
				return
			}
			assert.Equal(t, []string{"#.paths[" + tt.pattern + "]: invalid path template: " + tt.want}, ctx.Errors())
		})
	}
}
