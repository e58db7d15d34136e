package validator

import (
	"regexp"

	"github.com/erraggy/oascheck/internal/stringutil"
)

// ComponentNameRegex is the allowed shape of a reusable component name.
var ComponentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

// Number is the set of numeric field types range checks accept.
type Number interface {
	~int64 | ~uint64 | ~float64
}

// RequiredString reports an empty s.
func RequiredString[D any](ctx *Context[D], s, path string) {
	if s == "" {
		ctx.Error(path, "must not be empty")
	}
}

// URL reports a url without an http or https scheme, unless
// IgnoreInvalidUrls is set.
func URL[D any](ctx *Context[D], url, path string) {
	if ctx.Has(IgnoreInvalidUrls) {
		return
	}
	if !stringutil.IsValidURL(url) {
		ctx.Errorf(path, "must be a valid URL, found `%s`", url)
	}
}

// OptionalURL is URL for a field that may be absent.
func OptionalURL[D any](ctx *Context[D], url, path string) {
	if url != "" {
		URL(ctx, url, path)
	}
}

// Email reports a present email without "@".
func Email[D any](ctx *Context[D], email, path string) {
	if email != "" && !stringutil.IsValidEmail(email) {
		ctx.Errorf(path, "must be a valid email address, found `%s`", email)
	}
}

// Matches reports s when it does not match re.
func Matches[D any](ctx *Context[D], s string, re *regexp.Regexp, path string) {
	if !re.MatchString(s) {
		ctx.Errorf(path, "must match pattern `%s`, found `%s`", re, s)
	}
}

// Pattern reports a regular expression that does not compile.
func Pattern[D any](ctx *Context[D], pattern, path string) {
	if _, err := regexp.Compile(pattern); err != nil {
		ctx.Errorf(path, "pattern `%s` is invalid: %v", pattern, err)
	}
}

// Range reports a lower bound above its upper bound. Both bounds are
// optional; nothing is checked unless both are set.
func Range[D any, N Number](ctx *Context[D], path, minField string, lo *N, maxField string, hi *N) {
	if lo != nil && hi != nil && *lo > *hi {
		ctx.Errorf(path, ".%s: must be less than or equal to `%s`", minField, maxField)
	}
}

// Positive reports a present value that is not greater than zero.
func Positive[D any, N Number](ctx *Context[D], v *N, path string) {
	if v != nil && *v <= 0 {
		ctx.Errorf(path, "must be greater than 0, found `%v`", *v)
	}
}

// Exclusive reports two mutually exclusive fields that are both set.
func Exclusive[D any](ctx *Context[D], a, b bool, path, msg string) {
	if a && b {
		ctx.Error(path, msg)
	}
}

// NotVisited validates v at path the first time path is seen, reporting it
// as unused unless flag is set. A path already visited is skipped.
func NotVisited[D any, V Validatable[D]](ctx *Context[D], v V, flag Flags, path string) {
	if !ctx.Visit(path) {
		return
	}
	if !ctx.Has(flag) {
		ctx.Error(path, "unused")
	}
	v.ValidateWithContext(ctx, path)
}
