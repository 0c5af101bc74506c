package parser

import "fmt"

// promptTemplate is the fixed instruction template sent to the generation
// service. The schema rules keep Experience/Education as arrays of objects
// and Skills as a category map so downstream consumers get a predictable
// shape; nothing here validates the output — that is the sanitizer's job.
const promptTemplate = `You are a smart resume parser. Convert the following resume text into a JSON object.
Use headings as keys (like "Education", "Skills", "Experience") and map the content under them as values.
Also include "name", "email", and "phone" if possible.

IMPORTANT: Only output one valid JSON object.
Do NOT include explanations, markdown, or multiple JSONs.

--- SCHEMA INSTRUCTIONS ---
1.  **"Experience"**: MUST be an **array of objects**. Each object must represent one Job or Project and contain the keys: "title", "company_or_project", "dates", and "description_bullets" (which is an array of strings).
2.  **"Education"**: MUST be an **array of objects**. Each object must contain the keys: "degree", "institution", "dates", and "gpa_or_percent".
3.  **"Skills"**: Should be an **object** where keys are skill categories (e.g., "Languages", "Frameworks") and values are arrays of strings.

Resume:
%s

JSON output:
`

// BuildPrompt renders the instruction template with the extracted text
// interpolated verbatim.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
