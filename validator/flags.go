package validator

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/erraggy/oascheck/oaserrors"
)

// Flags is a set of relaxation flags. Each flag disables one class of
// validation rule for a pass.
type Flags uint32

const (
	// IgnoreMissingTags accepts operation tags that are not declared.
	IgnoreMissingTags Flags = 1 << iota
	// IgnoreExternalReferences accepts references outside the document.
	IgnoreExternalReferences
	// IgnoreInvalidUrls skips URL shape checks.
	IgnoreInvalidUrls
	// IgnoreNonUniqOperationIDs accepts repeated operation identifiers.
	IgnoreNonUniqOperationIDs
	// IgnoreUnusedPathItems accepts unreferenced path items (3.1).
	IgnoreUnusedPathItems
	// IgnoreUnusedTags accepts declared tags no operation uses.
	IgnoreUnusedTags
	// IgnoreUnusedSchemas accepts unreferenced schemas (definitions in 2.0).
	IgnoreUnusedSchemas
	// IgnoreUnusedParameters accepts unreferenced parameters.
	IgnoreUnusedParameters
	// IgnoreUnusedResponses accepts unreferenced responses.
	IgnoreUnusedResponses
	// IgnoreUnusedServerVariables accepts variables missing from the server URL.
	IgnoreUnusedServerVariables
	// IgnoreUnusedExamples accepts unreferenced examples.
	IgnoreUnusedExamples
	// IgnoreUnusedRequestBodies accepts unreferenced request bodies.
	IgnoreUnusedRequestBodies
	// IgnoreUnusedHeaders accepts unreferenced headers.
	IgnoreUnusedHeaders
	// IgnoreUnusedSecuritySchemes accepts unreferenced security schemes and scopes.
	IgnoreUnusedSecuritySchemes
	// IgnoreUnusedLinks accepts unreferenced links.
	IgnoreUnusedLinks
	// IgnoreUnusedCallbacks accepts unreferenced callbacks.
	IgnoreUnusedCallbacks
	// IgnoreEmptyInfoTitle accepts an empty info title.
	IgnoreEmptyInfoTitle
	// IgnoreEmptyInfoVersion accepts an empty info version.
	IgnoreEmptyInfoVersion
	// IgnoreEmptyResponseDescription accepts an empty response description.
	IgnoreEmptyResponseDescription
	// IgnoreEmptyExternalDocumentationURL accepts an empty external docs url.
	IgnoreEmptyExternalDocumentationURL
)

// Presets.
const (
	// NoFlags is the strictest set.
	NoFlags Flags = 0

	// DefaultFlags is the set used when no flag option is given.
	DefaultFlags = IgnoreUnusedPathItems

	// IgnoreUnused ignores every unused component except path items.
	IgnoreUnused = IgnoreUnusedTags |
		IgnoreUnusedSchemas |
		IgnoreUnusedParameters |
		IgnoreUnusedResponses |
		IgnoreUnusedServerVariables |
		IgnoreUnusedExamples |
		IgnoreUnusedRequestBodies |
		IgnoreUnusedHeaders |
		IgnoreUnusedSecuritySchemes |
		IgnoreUnusedLinks |
		IgnoreUnusedCallbacks

	// IgnoreEmptyRequiredFields ignores the empty-required-field checks.
	IgnoreEmptyRequiredFields = IgnoreEmptyInfoTitle |
		IgnoreEmptyInfoVersion |
		IgnoreEmptyResponseDescription |
		IgnoreEmptyExternalDocumentationURL
)

var flagNames = []string{
	"IgnoreMissingTags",
	"IgnoreExternalReferences",
	"IgnoreInvalidUrls",
	"IgnoreNonUniqOperationIDs",
	"IgnoreUnusedPathItems",
	"IgnoreUnusedTags",
	"IgnoreUnusedSchemas",
	"IgnoreUnusedParameters",
	"IgnoreUnusedResponses",
	"IgnoreUnusedServerVariables",
	"IgnoreUnusedExamples",
	"IgnoreUnusedRequestBodies",
	"IgnoreUnusedHeaders",
	"IgnoreUnusedSecuritySchemes",
	"IgnoreUnusedLinks",
	"IgnoreUnusedCallbacks",
	"IgnoreEmptyInfoTitle",
	"IgnoreEmptyInfoVersion",
	"IgnoreEmptyResponseDescription",
	"IgnoreEmptyExternalDocumentationURL",
}

// allFlags is the union of every defined flag.
const allFlags = Flags(1)<<20 - 1

// Has reports whether every flag in other is set in f. The empty set is
// contained in every set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// With returns f with every flag in others added.
func (f Flags) With(others ...Flags) Flags {
	for _, o := range others {
		f |= o
	}
	return f
}

// Without returns f with every flag in others removed.
func (f Flags) Without(others ...Flags) Flags {
	for _, o := range others {
		f &^= o
	}
	return f
}

// Len returns the number of flags set.
func (f Flags) Len() int {
	return bits.OnesCount32(uint32(f))
}

// String lists the set flag names joined by "|", or "none".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if rest := f &^ allFlags; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// ParseFlags parses the output of Flags.String. Names are separated by "|"
// and surrounding whitespace is ignored.
func ParseFlags(s string) (Flags, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return NoFlags, nil
	}
	var f Flags
	for part := range strings.SplitSeq(s, "|") {
		name := strings.TrimSpace(part)
		i := slices.Index(flagNames, name)
		if i < 0 {
			return NoFlags, &oaserrors.ConfigError{
				Option:  "flags",
				Value:   name,
				Message: "unknown relaxation flag",
			}
		}
		f |= 1 << i
	}
	return f, nil
}
