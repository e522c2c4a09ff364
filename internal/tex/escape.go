package tex

import "strings"

// ReservedChars lists every character Escape rewrites.
const ReservedChars = `\#$%^&_{}~`

// escaper rewrites reserved characters in a single left-to-right pass, so
// the backslashes and braces it inserts are never escaped a second time.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`^`, `\^{}`,
	`&`, `\&`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\~{}`,
)

// Escape returns text safe to place in a LaTeX document body.
func Escape(text string) string {
	if !strings.ContainsAny(text, ReservedChars) {
		return text
	}
	return escaper.Replace(text)
}
