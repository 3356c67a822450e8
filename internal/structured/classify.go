package structured

import "strings"

// validationSignatures are the observed message fragments of failures the
// repair pipeline can plausibly fix: schema rejections and JSON decode
// errors. The list is best-effort, not exhaustive.
var validationSignatures = []string{
	"validation",
	"Expected array",
	"Required",
	"Invalid",
	"parse",
}

// isValidationShaped classifies a first-attempt failure by message content.
// Unclassified errors never enter the fallback: misreading a transient
// provider failure as repairable would double the latency and cost of
// every such failure for no possible gain.
func isValidationShaped(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sig := range validationSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
