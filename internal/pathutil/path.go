package pathutil

import (
	"regexp"
	"strconv"
)

// Root is the location path of a document root.
const Root = "#"

// TemplateVarRegex matches URL template variables like {port}.
// It captures the variable name inside the braces.
var TemplateVarRegex = regexp.MustCompile(`\{([a-zA-Z0-9.\-_]+)\}`)

// Field appends a named field: "#.info" from ("#", "info").
func Field(path, name string) string {
	return path + "." + name
}

// Index appends a sequence index: "#.servers[0]".
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// Key appends a map key: "#.paths[/pets]".
func Key(path, key string) string {
	return path + "[" + key + "]"
}

// TemplateVars returns the variable names of a URL template in order of
// appearance, duplicates included.
func TemplateVars(s string) []string {
	matches := TemplateVarRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
