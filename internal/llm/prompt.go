package llm

import (
	"fmt"

	"github.com/dhabedank/structgen/internal/schema"
)

// JSONOnlyInstruction is appended to the prompt on the fallback text path,
// where the model already failed to produce schema-valid output once.
const JSONOnlyInstruction = `

CRITICAL: Respond with ONLY the raw JSON object. No explanations, no commentary, no markdown fences, no XML tags - just the JSON.`

// baseSystemPrompt is the system instruction for unconstrained calls.
const baseSystemPrompt = `You are a structured data generator. You receive a request and output ONLY valid JSON. No explanations, no commentary, no markdown - just the JSON object.`

// BuildSystemPrompt builds the system prompt for a request, embedding the
// schema and strict output rules when one is supplied.
func BuildSystemPrompt(s *schema.Schema) string {
	if s == nil {
		return baseSystemPrompt
	}

	schemaJSON, err := s.JSON()
	if err != nil {
		// A schema that cannot marshal still gets the strict base rules.
		return baseSystemPrompt
	}

	return fmt.Sprintf(`%s

Your output MUST conform to this JSON schema:

%s

OUTPUT REQUIREMENTS (CRITICAL):
- Output ONLY the JSON object, nothing before or after it
- Every required field must be present
- Arrays must be real JSON arrays, never strings containing JSON
- Do NOT wrap values in XML-style tags
- Do NOT use markdown code fences`, baseSystemPrompt, schemaJSON)
}
