package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jsonstudio/jsonstudio/internal/models"
)

func TestValidate_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		result := Validate(input)
		if !result.Valid {
			t.Errorf("Validate(%q).Valid = false, want true", input)
		}
		if result.Parsed != nil {
			t.Errorf("Validate(%q).Parsed = %v, want nil", input, result.Parsed)
		}
		if result.Error != nil {
			t.Errorf("Validate(%q).Error = %v, want nil", input, result.Error)
		}
	}
}

func TestValidate_SimpleObject(t *testing.T) {
	result := Validate(`{"name": "John Doe", "age": 30, "active": false, "city": null}`)
	if !result.Valid {
		t.Fatalf("Validate() valid = false, want true; error = %+v", result.Error)
	}

	obj, ok := result.Parsed.(*models.Object)
	if !ok {
		t.Fatalf("Validate() parsed is not a *models.Object, got %T", result.Parsed)
	}
	if obj.Len() != 4 {
		t.Errorf("parsed object has %d members, want 4", obj.Len())
	}
	if obj.Members[0].Key != "name" || obj.Members[3].Key != "city" {
		t.Errorf("parsed object lost document key order: %+v", obj.Members)
	}
	if age, _ := obj.Find("age"); age != json.Number("30") {
		t.Errorf("age = %#v, want json.Number(\"30\")", age)
	}
}

func TestValidate_MissingCommaScenario(t *testing.T) {
	input := "{\n  \"eventId\": \"e_0001\"\n  \"type\": \"deployment\"\n}"
	result := Validate(input)
	if result.Valid {
		t.Fatal("Validate() valid = true, want false")
	}
	if result.Error.Line != 2 {
		t.Errorf("diagnosis line = %d, want 2", result.Error.Line)
	}
	if !strings.Contains(strings.ToLower(result.Error.Suggestion), "comma") {
		t.Errorf("suggestion = %q, want it to mention a comma", result.Error.Suggestion)
	}
}

func TestValidate_UnterminatedStringScenario(t *testing.T) {
	input := "{\n  \"type\": \"deployment\n}"
	result := Validate(input)
	if result.Valid {
		t.Fatal("Validate() valid = true, want false")
	}
	if result.Error.Line != 2 {
		t.Errorf("diagnosis line = %d, want 2", result.Error.Line)
	}
	if !strings.Contains(strings.ToLower(result.Error.Suggestion), "quote") {
		t.Errorf("suggestion = %q, want it to mention a quote", result.Error.Suggestion)
	}
}

func TestValidate_ExtraClosingBraceScenario(t *testing.T) {
	input := "{\n  \"name\": \"John\"\n}}"
	result := Validate(input)
	if result.Valid {
		t.Fatal("Validate() valid = true, want false")
	}
	if !strings.Contains(result.Error.Suggestion, "Unexpected") {
		t.Errorf("suggestion = %q, want it to contain 'Unexpected'", result.Error.Suggestion)
	}
}

func TestValidate_MismatchedBracketScenario(t *testing.T) {
	input := "{\n  \"data\": [1, 2, 3}\n}"
	result := Validate(input)
	if result.Valid {
		t.Fatal("Validate() valid = true, want false")
	}
	if !strings.Contains(result.Error.Suggestion, "Mismatched") {
		t.Errorf("suggestion = %q, want it to contain 'Mismatched'", result.Error.Suggestion)
	}
}

func TestValidate_DuplicateKeyIsValid(t *testing.T) {
	// Duplicate keys are legal JSON under last-value-wins semantics; the
	// duplicate-key scanner is informational only and must not fail the gate.
	result := Validate(`{"name": "John", "age": 30, "name": "Jane"}`)
	if !result.Valid {
		t.Fatalf("Validate() valid = false, want true; error = %+v", result.Error)
	}
	obj, ok := result.Parsed.(*models.Object)
	if !ok {
		t.Fatalf("Validate() parsed is not a *models.Object, got %T", result.Parsed)
	}
	name, _ := obj.Find("name")
	if name != "Jane" {
		t.Errorf("name = %v, want the last value %q", name, "Jane")
	}
}

func TestValidate_NeverReturnsEmptyError(t *testing.T) {
	// Worst case is the generic fallback; the error is never empty.
	inputs := []string{"{", "tru", `{"a"`, "[1,", `@@@`}
	for _, input := range inputs {
		result := Validate(input)
		if result.Valid {
			t.Errorf("Validate(%q) valid = true, want false", input)
			continue
		}
		if result.Error == nil || result.Error.Message == "" {
			t.Errorf("Validate(%q) has no error message", input)
		}
		if result.Error != nil && result.Error.Suggestion == "" {
			t.Errorf("Validate(%q) has no suggestion", input)
		}
	}
}

func TestValidateLenient(t *testing.T) {
	input := "{\n  // a comment\n  \"a\": 1,\n}"
	if result := Validate(input); result.Valid {
		t.Fatal("strict Validate() accepted JWCC input")
	}
	result := ValidateLenient(input)
	if !result.Valid {
		t.Fatalf("ValidateLenient() valid = false, want true; error = %+v", result.Error)
	}
	obj, ok := result.Parsed.(*models.Object)
	if !ok {
		t.Fatalf("ValidateLenient() parsed is not a *models.Object, got %T", result.Parsed)
	}
	if a, _ := obj.Find("a"); a != json.Number("1") {
		t.Errorf("a = %#v, want json.Number(\"1\")", a)
	}
}

func TestParse_TrailingData(t *testing.T) {
	if _, err := Parse(`{"a": 1} {"b": 2}`); err == nil {
		t.Error("Parse() accepted multiple root values, want error")
	}
}

func TestParse_NestedOrder(t *testing.T) {
	value, err := Parse(`{"z": {"b": 1, "a": 2}, "y": [true, null, "s"]}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obj := value.(*models.Object)
	if obj.Members[0].Key != "z" || obj.Members[1].Key != "y" {
		t.Errorf("root keys out of order: %+v", obj.Members)
	}
	inner := obj.Members[0].Value.(*models.Object)
	if inner.Members[0].Key != "b" || inner.Members[1].Key != "a" {
		t.Errorf("nested keys out of order: %+v", inner.Members)
	}
	arr := obj.Members[1].Value.(models.Array)
	if len(arr) != 3 || arr[0] != true || arr[1] != nil || arr[2] != "s" {
		t.Errorf("array decoded incorrectly: %#v", arr)
	}
}

func TestCleanMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JSON.parse: unexpected character", "unexpected character"},
		{"JSON Parse error: Unterminated string", "Unterminated string"},
		{"unexpected end of JSON input", "unexpected end of JSON input"},
	}
	for _, tt := range tests {
		if got := CleanMessage(tt.in); got != tt.want {
			t.Errorf("CleanMessage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
