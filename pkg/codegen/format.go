package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber renders v as the shortest decimal that round-trips, without an
// exponent. Integral values have no fractional part: 0, 100, -2.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatColor renders a packed color as 0xAARRGGBB with uppercase digits.
func FormatColor(c uint32) string {
	return fmt.Sprintf("0x%08X", c)
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// QuoteString renders s as a double quoted DSL string literal.
func QuoteString(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}
