package enumgen

import (
	"go/token"
	"strings"
	"unicode"
)

func isExportedIdent(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s)
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// camel turns an upper snake case C suffix into CamelCase:
// "PANEL_ICON" -> "PanelIcon", "0" -> "0", "2LEVEL_DISPLAY" -> "2levelDisplay".
func camel(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// goIdent is the exported constant name of a variant: the group name
// followed by the CamelCase of the prefix-stripped C name.
func goIdent(group, suffix string) string {
	return group + camel(suffix)
}
