package repair

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CoerceArrays converts string-encoded JSON at the given dotted paths
// into real structures: a string value is JSON-parsed and spliced in,
// with an empty array substituted when it will not parse; an existing
// array is left alone; any other value becomes an empty array. Paths
// absent from the document are skipped. Pure and never fails; the input
// document is never modified, every splice produces a fresh one.
func CoerceArrays(doc []byte, paths []string) []byte {
	out := doc
	for _, path := range paths {
		value := gjson.GetBytes(out, path)
		if !value.Exists() {
			continue
		}

		switch {
		case value.IsArray():
			// already structured
		case value.Type == gjson.String:
			if json.Valid([]byte(value.Str)) {
				out = setRaw(out, path, value.Str)
			} else {
				out = setRaw(out, path, "[]")
			}
		default:
			out = setRaw(out, path, "[]")
		}
	}
	return out
}

func setRaw(doc []byte, path, raw string) []byte {
	updated, err := sjson.SetRawBytes(doc, path, []byte(raw))
	if err != nil {
		return doc
	}
	return updated
}
