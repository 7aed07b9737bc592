package eval

import (
	"regexp"
	"strconv"
	"strings"
)

// These patterns implement the first three predicates of the ordered
// dispatch table (§4.2): integer literal, float literal, quoted string
// literal. They operate on raw token text, exactly what the lexer
// handed the parser, since int/float classification is deliberately
// deferred out of the lexer (a token starting with a digit could still
// turn out to be neither, e.g. a malformed number the reader should
// just treat as an ordinary symbol and let `UnboundVariable` catch).
var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatPattern   = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+$`)
)

func isIntegerText(s string) bool {
	return integerPattern.MatchString(s)
}

func isFloatText(s string) bool {
	return floatPattern.MatchString(s)
}

func isStringText(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func parseIntegerText(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloatText(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// unquoteStringText strips the surrounding quotes the lexer left in
// place so the analyzer could recognize a string literal by looking at
// the token text alone.
func unquoteStringText(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "\""), "\"")
}
