package parser

// canonicalKeys are the fields the regex extractor can always supply.
var canonicalKeys = []string{"name", "email", "phone"}

// MergeBasicInfo backfills fields the model omitted. A key that is present
// in the structured map is never overwritten, even when its value is null —
// only truly missing keys are filled in. raw_text is carried over the same
// way so the result always includes the extracted text.
func MergeBasicInfo(structured map[string]any, basic BasicInfo) map[string]any {
	fields := basic.Fields()

	for _, k := range canonicalKeys {
		if _, present := structured[k]; !present {
			structured[k] = fields[k]
		}
	}

	if _, present := structured["raw_text"]; !present {
		structured["raw_text"] = basic.RawText
	}

	return structured
}
