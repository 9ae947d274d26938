// Package httputil provides HTTP status, method and media type helpers
// shared by the parser and the operation binder.
package httputil

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP method names as they appear in a path item.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists the methods of a path item in traversal order.
var Methods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

// ValidateStatusCode checks if a responses key is valid according to OpenAPI.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	return IsWildcardStatus(code) || NumericStatus(code) > 0
}

// IsWildcardStatus reports whether code is a range pattern such as "4XX".
func IsWildcardStatus(code string) bool {
	return len(code) == StatusCodeLength &&
		code[0] >= '1' && code[0] <= '5' &&
		code[1] == WildcardChar && code[2] == WildcardChar
}

// NumericStatus returns the status code as an int, or 0 when code is not a
// three digit code in the 100-599 range.
func NumericStatus(code string) int {
	if len(code) != StatusCodeLength {
		return 0
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < MinStatusCode || n > MaxStatusCode {
		return 0
	}
	return n
}

// StatusText returns the canonical reason phrase for a numeric status, or ""
// when the code has none.
func StatusText(code int) string {
	return http.StatusText(code)
}

// MediaKind classifies a media type for payload handling.
type MediaKind int

const (
	// MediaOther is any media type the generator does not bind.
	MediaOther MediaKind = iota
	// MediaJSON is application/json or a +json structured syntax suffix.
	MediaJSON
	// MediaForm is application/x-www-form-urlencoded.
	MediaForm
)

// String returns the canonical media type of the kind.
func (k MediaKind) String() string {
	switch k {
	case MediaJSON:
		return "application/json"
	case MediaForm:
		return "application/x-www-form-urlencoded"
	default:
		return "other"
	}
}

// ClassifyMediaType returns the MediaKind of a media type string.
// Parameters such as charset are ignored.
func ClassifyMediaType(mediaType string) MediaKind {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return MediaOther
	}
	switch {
	case mt == "application/json", strings.HasSuffix(mt, "+json"):
		return MediaJSON
	case mt == "application/x-www-form-urlencoded":
		return MediaForm
	}
	return MediaOther
}
