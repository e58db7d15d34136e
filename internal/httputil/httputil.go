// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	MinStatusCode = 100 // Minimum valid HTTP status code
	MaxStatusCode = 599 // Maximum valid HTTP status code
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// StatusCodeRanges names the accepted response keys in decode errors.
var StatusCodeRanges = []string{"1xx", "2xx", "3xx", "4xx", "5xx"}

// ParseStatusCode parses a response key as a decimal HTTP status code
// within [100..599]. Leading zeros are accepted, so "0200" and "200" are
// the same code; signs and whitespace are not.
func ParseStatusCode(key string) (int, bool) {
	if key == "" || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	code, err := strconv.ParseUint(key, 10, 16)
	if err != nil || code < MinStatusCode || code > MaxStatusCode {
		return 0, false
	}
	return int(code), true
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if strings.HasSuffix(mediaType, "/*") {
		// Check format: type/* (e.g., application/*)
		parts := strings.Split(mediaType, "/")
		if len(parts) == 2 && parts[0] != "" && parts[0] != "*" {
			return true
		}
		return false
	}

	// Use standard MIME type parser for regular types
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
