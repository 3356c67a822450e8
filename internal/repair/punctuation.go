package repair

import "regexp"

// Missing-comma detection is token adjacency, not a tokenizer: the
// inputs are almost-JSON and the defect set is narrow, so a full
// reparse-and-repair grammar buys nothing here.
var (
	// a closing } or ] directly followed by a "field": token
	afterCloseRe = regexp.MustCompile(`([}\]])(\s*)("(?:[^"\\]|\\.)*"\s*:)`)
	// a quoted string value followed by a "field": token
	afterStringRe = regexp.MustCompile(`("(?:[^"\\]|\\.)*")(\s+)("(?:[^"\\]|\\.)*"\s*:)`)

	trailingCommaObjRe = regexp.MustCompile(`,(\s*})`)
	trailingCommaArrRe = regexp.MustCompile(`,(\s*\])`)
)

// FixPunctuation inserts commas missing between a value and the next
// "field": token, then strips trailing commas before a closing brace or
// bracket. Pure, never fails; the output may still be invalid JSON,
// which the caller detects at parse time.
func FixPunctuation(text string) string {
	out := afterCloseRe.ReplaceAllString(text, `$1,$2$3`)
	out = afterStringRe.ReplaceAllString(out, `$1,$2$3`)
	out = trailingCommaObjRe.ReplaceAllString(out, `$1`)
	out = trailingCommaArrRe.ReplaceAllString(out, `$1`)
	return out
}
