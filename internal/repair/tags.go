package repair

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The tag patterns below cover the observed ways models leak tool-call
// style pseudo-XML into what should have been plain JSON. Passes run
// most- to least-specific; a later, looser pattern must not consume text
// a more specific earlier pattern claims.
var (
	closedTagRe     = regexp.MustCompile(`(?s)<parameter\s+name="([^"]+)"\s*>(.*?)</parameter>`)
	commaArrayTagRe = regexp.MustCompile(`,\s*<parameter\s+name="([^"]+)"\s*>\s*\[`)
	commaObjTagRe   = regexp.MustCompile(`,\s*<parameter\s+name="([^"]+)"\s*>\s*\{`)
	leadingArrayRe  = regexp.MustCompile(`^\s*<parameter\s+name="([^"]+)"\s*>\s*\[`)
	scalarTagRe     = regexp.MustCompile(`<parameter\s+name="([^"]+)"\s*>[ \t]*([^\s,}\]{[<]*)`)
	selfClosedRe    = regexp.MustCompile(`<parameter\s+name="([^"]+)"\s*/>`)
	leftoverTagRe   = regexp.MustCompile(`<[^>]*(?:>|$)`)
)

// NormalizeTags rewrites pseudo-XML parameter tags into JSON key-value
// fragments. Pure, never fails; unrecognizable tag remnants are stripped
// at the end as unrecoverable artifacts.
func NormalizeTags(text string) string {
	out := rewriteClosedTags(text)
	out = rewriteUnclosedCollection(out, commaArrayTagRe, '[', ']', "[]")
	out = rewriteUnclosedCollection(out, commaObjTagRe, '{', '}', "{}")
	out = rewriteLeadingArray(out)
	out = rewriteScalarTags(out)
	out = selfClosedRe.ReplaceAllString(out, `"$1": null`)
	return leftoverTagRe.ReplaceAllString(out, "")
}

// rewriteClosedTags handles the well-formed case:
// <parameter name="F">V</parameter> becomes "F": V when V is valid JSON,
// otherwise V is wrapped as a JSON string.
func rewriteClosedTags(text string) string {
	return closedTagRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := closedTagRe.FindStringSubmatch(m)
		name, value := sub[1], strings.TrimSpace(sub[2])
		if json.Valid([]byte(value)) {
			return quoteKey(name) + ": " + value
		}
		return quoteKey(name) + ": " + quoteValue(value)
	})
}

// rewriteUnclosedCollection handles tags whose closing </parameter> never
// arrived and whose value is an array or object literal:
// , <parameter name="F">[...] becomes , "F": [...] when the balanced
// bracket run parses, and the empty collection otherwise. A value that
// runs off the end of the text is replaced by the empty collection and
// the dangling tail dropped.
func rewriteUnclosedCollection(text string, re *regexp.Regexp, open, close byte, empty string) string {
	var b strings.Builder
	rest := text
	for {
		loc := re.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			return b.String()
		}
		name := rest[loc[2]:loc[3]]
		openIdx := loc[1] - 1 // the match ends at the opening bracket
		b.WriteString(rest[:loc[0]])
		b.WriteString(", ")
		b.WriteString(quoteKey(name))
		b.WriteString(": ")

		end, ok := scanBalanced(rest, openIdx, open, close)
		if !ok {
			b.WriteString(empty)
			return b.String()
		}
		seg := rest[openIdx : end+1]
		if json.Valid([]byte(seg)) {
			b.WriteString(seg)
		} else {
			b.WriteString(empty)
		}
		rest = rest[end+1:]
	}
}

// rewriteLeadingArray is the start-of-text variant of the unclosed array
// tag, where no comma precedes the tag. Applied at most once.
func rewriteLeadingArray(text string) string {
	loc := leadingArrayRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	name := text[loc[2]:loc[3]]
	openIdx := loc[1] - 1

	end, ok := scanBalanced(text, openIdx, '[', ']')
	if !ok {
		return quoteKey(name) + ": []"
	}
	seg := text[openIdx : end+1]
	if json.Valid([]byte(seg)) {
		return quoteKey(name) + ": " + seg + text[end+1:]
	}
	return quoteKey(name) + ": []" + text[end+1:]
}

// rewriteScalarTags handles unclosed tags with a bare scalar value
// terminated by a delimiter, closing bracket, whitespace, or the end of
// the text.
func rewriteScalarTags(text string) string {
	return scalarTagRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := scalarTagRe.FindStringSubmatch(m)
		name, value := sub[1], sub[2]
		if value != "" && json.Valid([]byte(value)) {
			return quoteKey(name) + ": " + value
		}
		return quoteKey(name) + ": " + quoteValue(value)
	})
}

// scanBalanced finds the index of the close bracket matching the open
// bracket at start, skipping brackets inside JSON strings.
func scanBalanced(s string, start int, open, close byte) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case open:
			if !inString {
				depth++
			}
		case close:
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

func quoteKey(name string) string {
	q, _ := json.Marshal(name)
	return string(q)
}

func quoteValue(v string) string {
	q, _ := json.Marshal(v)
	return string(q)
}
