package parser

import (
	"github.com/erraggy/oascheck/internal/httputil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Integer formats.
const (
	FormatInt32 = "int32"
	FormatInt64 = "int64"
)

// Number formats.
const (
	FormatFloat  = "float"
	FormatDouble = "double"
)

// IntegerFormats and NumberFormats are the closed format sets; any other
// value is a decode error. String formats are open.
var (
	IntegerFormats = []string{FormatInt32, FormatInt64}
	NumberFormats  = []string{FormatFloat, FormatDouble}
)

// Collection formats of Swagger 2.0 array parameters.
const (
	CollectionCSV   = "csv"
	CollectionSSV   = "ssv"
	CollectionTSV   = "tsv"
	CollectionPipes = "pipes"
	CollectionMulti = "multi"
)

// CollectionFormats lists every accepted collection format.
var CollectionFormats = []string{CollectionCSV, CollectionSSV, CollectionTSV, CollectionPipes, CollectionMulti}

// HTTP methods in the order operations are visited.
const (
	MethodGet     = httputil.MethodGet
	MethodPut     = httputil.MethodPut
	MethodPost    = httputil.MethodPost
	MethodDelete  = httputil.MethodDelete
	MethodOptions = httputil.MethodOptions
	MethodHead    = httputil.MethodHead
	MethodPatch   = httputil.MethodPatch
	MethodTrace   = httputil.MethodTrace
)

// Methods20 and Methods30 are the operation slots of a path item per
// version line; 3.1 shares Methods30.
var (
	Methods20 = []string{MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch}
	Methods30 = []string{MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch, MethodTrace}
)

// NormalizeMethod lower-cases a path-item key so that "GET" and "get"
// select the same operation slot.
func NormalizeMethod(key string) string {
	// Casers are stateful and must not be shared.
	return cases.Lower(language.Und).String(key)
}
