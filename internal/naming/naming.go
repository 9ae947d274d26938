// Package naming converts wire identifiers from an API document into Go
// identifiers.
//
// All conversions are pure and total: any input maps to a valid Go
// identifier. Input with no letters or digits maps to Placeholder, and
// callers use HasIdentifier to report that case.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/swagg-dev/swagg/internal/httputil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder is the identifier produced for input that contains no letters
// or digits.
const Placeholder = "Unnamed"

// UncasedPrefix is prepended to a name whose first letter has no upper
// case, which Go would otherwise leave unexported.
const UncasedPrefix = "X"

// commonInitialisms are upper-cased as a whole, the way Go names them.
var commonInitialisms = map[string]bool{
	"ACL": true, "API": true, "ASCII": true, "CPU": true, "CSS": true, "DNS": true,
	"EOF": true, "GUID": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "JWT": true, "QPS": true, "RAM": true, "RPC": true,
	"SLA": true, "SMTP": true, "SQL": true, "SSH": true, "TCP": true, "TLS": true,
	"TTL": true, "UDP": true, "UI": true, "UID": true, "UUID": true, "URI": true,
	"URL": true, "UTF8": true, "VM": true, "XML": true, "XSRF": true, "XSS": true,
}

// Words splits s into words. Anything that is not a letter or digit
// separates words, and so do camel humps: "userID" -> [user ID],
// "HTTPServer" -> [HTTP Server], "first_name" -> [first name].
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// aB -> a|B, 1B -> 1|B, ABc -> A|Bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// HasIdentifier reports whether s contains at least one letter or digit,
// i.e. whether conversions of s avoid the Placeholder.
func HasIdentifier(s string) bool {
	return len(Words(s)) > 0
}

// pascalWord title-cases one word. A Caser is stateful, so callers pass
// their own.
func pascalWord(c cases.Caser, w string) string {
	if upper := strings.ToUpper(w); commonInitialisms[upper] {
		return upper
	}
	return c.String(w)
}

func newTitleCaser() cases.Caser {
	return cases.Title(language.Und)
}

func pascal(s, digitPrefix string) string {
	words := Words(s)
	if len(words) == 0 {
		return Placeholder
	}
	c := newTitleCaser()
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(pascalWord(c, w))
	}
	name := sb.String()
	switch r, _ := utf8.DecodeRuneInString(name); {
	case unicode.IsDigit(r):
		name = digitPrefix + name
	case !unicode.IsUpper(r):
		// scripts without case, e.g. "名前" -> "X名前"
		name = UncasedPrefix + name
	}
	return name
}

// ToTypeName converts a wire name to an exported Go type name.
// Example: "session_user" -> "SessionUser", "42" -> "T42"
func ToTypeName(s string) string {
	return pascal(s, "T")
}

// ToFieldName converts a property name to an exported Go field name.
// Example: "firstName" -> "FirstName", "user-id" -> "UserID"
func ToFieldName(s string) string {
	return pascal(s, "F")
}

// ToVariantName converts an enum value or response label to the suffix of an
// exported constant or type name.
// Example: "in_progress" -> "InProgress", "404" -> "V404"
func ToVariantName(s string) string {
	return pascal(s, "V")
}

// ToFunctionName converts an operation identifier to an exported method name
// fragment.
// Example: "getSession" -> "GetSession"
func ToFunctionName(s string) string {
	return pascal(s, "Op")
}

// tagPunct is the punctuation encoding/json accepts in a struct tag name.
const tagPunct = "!#$%&()*+-./:;<=>?@[]^_{|}~ "

// IsTagName reports whether wire name s survives as the name part of a
// struct tag: it is non-empty, is not "-", and every rune is a letter, a
// digit or tagPunct. The comma is excluded since it starts the options.
func IsTagName(s string) bool {
	if s == "" || s == "-" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(tagPunct, r) {
			return false
		}
	}
	return true
}

// NeedsRename reports whether a serialization directive is needed to keep
// the wire name of a converted identifier.
func NeedsRename(wireName, goName string) bool {
	return wireName != goName
}

// OperationName returns the Go name fragment of an operation: the
// operationId when present, otherwise the method and path.
// Example: ("", "get", "/users/{id}") -> "GetUsersByID"
func OperationName(operationID, method, path string) string {
	if strings.TrimSpace(operationID) != "" && HasIdentifier(operationID) {
		return ToFunctionName(operationID)
	}
	p := strings.ReplaceAll(path, "/", " ")
	p = strings.ReplaceAll(p, "{", " By ")
	p = strings.ReplaceAll(p, "}", " ")
	return ToFunctionName(method + " " + p)
}

// StatusLabel returns the variant label of a response: override when set,
// else the canonical status text ("200" -> "Ok", "404" -> "NotFound"), else
// "Status<code>".
func StatusLabel(status, override string) string {
	if HasIdentifier(override) {
		return ToVariantName(override)
	}
	if text := httputil.StatusText(httputil.NumericStatus(status)); text != "" {
		return ToVariantName(text)
	}
	return "Status" + strings.Join(Words(status), "")
}
