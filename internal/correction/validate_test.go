package correction

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validDocument(pct any) map[string]any {
	return map[string]any{
		"stats": map[string]any{
			"total_fautes":                        0,
			"fautes_orthographe":                  0,
			"fautes_grammaire":                    0,
			"fautes_conjugaison":                  0,
			"pourcentage_mots_bien_orthographies": pct,
		},
		"message_general":     "Parfait",
		"fautes":              []any{},
		"conclusion_positive": "Bravo",
	}
}

// TestValidate_PercentageBounds checks that 0 and 100 pass while 101 and -1 are rejected, not clamped.
func TestValidate_PercentageBounds(t *testing.T) {
	for _, pct := range []int{0, 100} {
		if _, err := Validate(validDocument(pct)); err != nil {
			t.Errorf("percentage %d rejected: %v", pct, err)
		}
	}
	for _, pct := range []int{101, -1} {
		_, err := Validate(validDocument(pct))
		var sve *SchemaValidationError
		if !errors.As(err, &sve) {
			t.Fatalf("percentage %d: error = %v, want SchemaValidationError", pct, err)
		}
		if !strings.Contains(sve.Error(), "pourcentage_mots_bien_orthographies") {
			t.Errorf("issue should name the field, got %q", sve.Error())
		}
	}
}

// TestValidate_NoCrossCheckOfFaultCount accepts a total that disagrees with the sentence list.
func TestValidate_NoCrossCheckOfFaultCount(t *testing.T) {
	doc := validDocument(80)
	doc["stats"].(map[string]any)["total_fautes"] = 5
	a, err := Validate(doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a.Stats.TotalErrors != 5 || len(a.ErrorsBySentence) != 0 {
		t.Fatalf("unexpected analysis %+v", a)
	}
}

func TestValidate_RejectsFractionalCounts(t *testing.T) {
	doc := validDocument(50)
	doc["stats"].(map[string]any)["fautes_grammaire"] = 1.5
	if _, err := Validate(doc); err == nil {
		t.Fatal("fractional count accepted")
	}

	doc = validDocument(50.0)
	if _, err := Validate(doc); err != nil {
		t.Fatalf("integral float rejected: %v", err)
	}
}

func TestValidate_RejectsOutOfRangeIntegers(t *testing.T) {
	for _, raw := range []string{"99999999999999999999", "-99999999999999999999", "1e300"} {
		doc := validDocument(50)
		doc["stats"].(map[string]any)["total_fautes"] = json.Number(raw)
		_, err := Validate(doc)
		var sve *SchemaValidationError
		if !errors.As(err, &sve) {
			t.Fatalf("%s: error = %v, want SchemaValidationError", raw, err)
		}
		if len(sve.Issues) != 1 || sve.Issues[0] != "stats.total_fautes: not an integer" {
			t.Errorf("%s: issues = %v", raw, sve.Issues)
		}
	}
}

func TestValidate_ReportsEveryIssue(t *testing.T) {
	doc := map[string]any{
		"message_general": "  ",
		"fautes": []any{
			map[string]any{"sentence_order_number": 0, "texte_eleve": "a", "correction": "b", "explication": "c", "regle": 7},
		},
	}
	_, err := Validate(doc)
	var sve *SchemaValidationError
	if !errors.As(err, &sve) {
		t.Fatalf("error = %v, want SchemaValidationError", err)
	}
	for _, want := range []string{
		"stats: missing",
		"message_general: empty",
		"fautes[0].sentence_order_number: 0 is not positive",
		"fautes[0].regle: not a string",
		"conclusion_positive: missing",
	} {
		found := false
		for _, issue := range sve.Issues {
			if strings.HasPrefix(issue, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("issues %v do not contain %q", sve.Issues, want)
		}
	}
}

func TestValidate_IgnoresUnknownKeys(t *testing.T) {
	doc := validDocument(100)
	doc["extra"] = true
	if _, err := Validate(doc); err != nil {
		t.Fatalf("unknown key rejected: %v", err)
	}
}

func TestRepair_DoesNotMutateInput(t *testing.T) {
	doc := map[string]any{"fautes": []any{map[string]any{"correction": "x"}}}
	Repair(doc)
	if _, ok := doc["message_general"]; ok {
		t.Fatal("Repair added keys to its input")
	}
	if len(doc["fautes"].([]any)[0].(map[string]any)) != 1 {
		t.Fatal("Repair modified a nested element of its input")
	}
}

func TestResponseSchema_IsClosed(t *testing.T) {
	s := ResponseSchema()
	if s["additionalProperties"] != false {
		t.Fatal("root schema must forbid additional properties")
	}
	req, _ := s["required"].([]string)
	if len(req) != 4 {
		t.Fatalf("root required = %v", req)
	}
	props := s["properties"].(map[string]any)
	for _, key := range req {
		if _, ok := props[key]; !ok {
			t.Errorf("required key %q has no property", key)
		}
	}
}
