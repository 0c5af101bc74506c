package parser

import "testing"

// ========== MergeBasicInfo ==========

func TestMerge_BackfillsMissingKeys(t *testing.T) {
	basic := ExtractBasicInfo("John Doe\njohn@x.com\n555-123-4567")
	structured := map[string]any{"Skills": map[string]any{"Languages": []any{"Python"}}}

	got := MergeBasicInfo(structured, basic)

	if got["name"] != "John Doe" {
		t.Errorf("name = %v, want backfilled 'John Doe'", got["name"])
	}
	if got["email"] != "john@x.com" {
		t.Errorf("email = %v, want backfilled", got["email"])
	}
	if got["phone"] != "555-123-4567" {
		t.Errorf("phone = %v, want backfilled", got["phone"])
	}
	if got["raw_text"] != basic.RawText {
		t.Errorf("raw_text = %v, want extracted text", got["raw_text"])
	}
	if _, ok := got["Skills"]; !ok {
		t.Error("Skills lost during merge")
	}
}

func TestMerge_NeverOverwritesPresentKey(t *testing.T) {
	basic := ExtractBasicInfo("John Doe\njohn@x.com")
	structured := map[string]any{
		"name":  "Dr. John Doe",
		"email": "different@y.org",
	}

	got := MergeBasicInfo(structured, basic)

	if got["name"] != "Dr. John Doe" {
		t.Errorf("name = %v, model value must win", got["name"])
	}
	if got["email"] != "different@y.org" {
		t.Errorf("email = %v, model value must win", got["email"])
	}
}

func TestMerge_PresentNullIsNotOverwritten(t *testing.T) {
	basic := ExtractBasicInfo("John\na@b.com")
	structured := map[string]any{"email": nil}

	got := MergeBasicInfo(structured, basic)

	v, present := got["email"]
	if !present {
		t.Fatal("email key disappeared")
	}
	if v != nil {
		t.Errorf("email = %v, explicit null must be left untouched", v)
	}
}

func TestMerge_AbsentContactsBackfillAsNull(t *testing.T) {
	basic := ExtractBasicInfo("Name Only")
	got := MergeBasicInfo(map[string]any{}, basic)

	if v, present := got["email"]; !present || v != nil {
		t.Errorf("email = %v (present=%v), want backfilled null", v, present)
	}
	if v, present := got["phone"]; !present || v != nil {
		t.Errorf("phone = %v (present=%v), want backfilled null", v, present)
	}
	if got["name"] != "Name Only" {
		t.Errorf("name = %v", got["name"])
	}
}

func TestMerge_RawTextAlwaysPresent(t *testing.T) {
	basic := ExtractBasicInfo("Someone\ntext body")
	got := MergeBasicInfo(map[string]any{"name": "Someone"}, basic)

	if got["raw_text"] != "Someone\ntext body" {
		t.Errorf("raw_text = %v, want extracted text carried into result", got["raw_text"])
	}
}
