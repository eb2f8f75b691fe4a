package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.Und, cases.NoLower)

// pascal returns the exported form of a property or type name.
//
//	pascal("x")        => "X"
//	pascal("userName") => "UserName"
//	pascal("user_name") => "UserName"
func pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = titler.String(w)
	}
	return strings.Join(words, "")
}

// camel returns the unexported form of a name.
//
//	camel("X")        => "x"
//	camel("URL")      => "url"
//	camel("UserName") => "userName"
func camel(s string) string {
	s = pascal(s)
	if s == "" {
		return s
	}
	if strings.ToUpper(s) == s {
		return strings.ToLower(s)
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// Plural returns the plural form of an exported name.
func Plural(s string) string {
	return inflect.Pluralize(s)
}

// reservedIdent holds the package names referenced by generated code.
// Fields, parameters and locals must not shadow them.
var reservedIdent = names(
	"hashing",
	"maps",
	"memo",
	"other",
	"slices",
	"strings",
	"valgen",
)

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

// safeIdent returns a local identifier for name that doesn't conflict with
// Go keywords or package names used by the generated code.
func safeIdent(name string) string {
	if _, ok := reservedIdent[name]; ok || token.Lookup(name).IsKeyword() {
		return "_" + name
	}
	return name
}

// receiver returns the receiver name for a type: its first letter, lowercase.
func receiver(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	recv := string(unicode.ToLower(r))
	return safeIdent(recv)
}

// Snake converts the given name to snake case.
//
//	Snake("Point")     => "point"
//	Snake("GeoUtils")  => "geo_utils"
//	Snake("HTTPRoute") => "http_route"
func Snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
