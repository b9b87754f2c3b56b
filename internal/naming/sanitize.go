// Package naming resolves filesystem-safe folder and file names for
// downloaded items: it sanitizes metadata strings, renders naming
// templates, and picks the first naming scheme whose paths fit within the
// path-length budget.
package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// separatorRunRE collapses two or more adjacent separator characters
// (space, comma, period, colon, semicolon, pipe, slash, backslash,
// underscore; hyphen deliberately excluded) into the last separator
// followed by a single space.
var separatorRunRE = regexp.MustCompile(`(?:\s*([,.:;|/\\_])\s*){2,}`)

var bracketPairs = []struct{ open, close string }{
	{`\(`, `\)`},
	{`\[`, `\]`},
	{`\{`, `\}`},
	{`<`, `>`},
	{`《`, `》`},
	{`〈`, `〉`},
	{`「`, `」`},
	{`『`, `』`},
	{`（`, `）`},
	{`［`, `］`},
	{`【`, `】`},
}

// emptyBracketREs match bracket pairs whose content is only separators or
// whitespace, across ASCII and CJK/full-width bracket styles.
var emptyBracketREs = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(bracketPairs))
	for _, p := range bracketPairs {
		res = append(res, regexp.MustCompile(p.open+`[\s,.:;|/\\_\-]*`+p.close))
	}
	return res
}()

// Separators stuck to the inside of a bracket boundary.
var (
	afterOpenRE   = regexp.MustCompile(`([([{<《〈「『（［【])\s*[,.:;|/\\_]+\s*`)
	beforeCloseRE = regexp.MustCompile(`\s*[,.:;|/\\_]+\s*([)\]}>》〉」』）］】])`)
	whitespaceRE  = regexp.MustCompile(`\s+`)
)

// Normalize cleans up redundant punctuation and whitespace in a metadata
// string and normalizes it to Unicode NFC. It runs before SafeFilename:
// the punctuation rules must see the original characters, not their
// full-width substitutes.
func Normalize(s string) string {
	s = norm.NFC.String(s)

	s = separatorRunRE.ReplaceAllString(s, "$1 ")

	for _, re := range emptyBracketREs {
		s = re.ReplaceAllString(s, "")
	}
	s = afterOpenRE.ReplaceAllString(s, "$1")
	s = beforeCloseRE.ReplaceAllString(s, "$1")

	s = whitespaceRE.ReplaceAllString(s, " ")

	s = strings.TrimSpace(s)
	s = strings.Trim(s, ".")
	return strings.TrimSpace(s)
}

// fullWidthReplacer maps each filesystem-illegal character to its dedicated
// full-width counterpart, keeping names readable.
var fullWidthReplacer = strings.NewReplacer(
	"/", "／",
	"\\", "＼",
	":", "：",
	"*", "＊",
	"?", "？",
	"\"", "＂",
	"<", "＜",
	">", "＞",
	"|", "｜",
)

// SafeFilename replaces characters that are invalid in file names on
// common filesystems with their full-width equivalents.
func SafeFilename(s string) string {
	return fullWidthReplacer.Replace(s)
}

// Clean applies Normalize then SafeFilename, the composition used for
// every rendered path segment.
func Clean(s string) string {
	return SafeFilename(Normalize(s))
}
