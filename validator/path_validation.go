// This file implements path template checks shared by every version.

package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oascheck/internal/pathutil"
)

// checkPathTemplate reports the first structural problem of a path
// template: empty or nested braces, unbalanced braces, consecutive slashes,
// reserved characters, and repeated variable names.
func checkPathTemplate(pattern string) error {
	if strings.Contains(pattern, "{}") {
		return fmt.Errorf("empty parameter name")
	}
	if strings.Contains(pattern, "//") {
		return fmt.Errorf("consecutive slashes")
	}
	// '#' starts a fragment and '?' a query string.
	for _, reserved := range []string{"#", "?"} {
		if strings.Contains(pattern, reserved) {
			return fmt.Errorf("reserved character `%s`", reserved)
		}
	}

	open := 0
	for i, ch := range pattern {
		switch ch {
		case '{':
			open++
			if open > 1 {
				return fmt.Errorf("nested braces at position %d", i)
			}
		case '}':
			open--
			if open < 0 {
				return fmt.Errorf("unexpected closing brace at position %d", i)
			}
		}
	}
	if open != 0 {
		return fmt.Errorf("unclosed brace")
	}

	seen := make(map[string]bool)
	for _, name := range pathutil.TemplateVars(pattern) {
		if seen[name] {
			return fmt.Errorf("duplicate parameter name `%s`", name)
		}
		seen[name] = true
	}
	return nil
}

// PathTemplate checks that a paths key is a well-formed template.
func PathTemplate[D any](ctx *Context[D], pattern, path string) {
	if err := checkPathTemplate(pattern); err != nil {
		ctx.Errorf(path, "invalid path template: %s", err)
	}
}
