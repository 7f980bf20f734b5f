package correction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

const excerptLimit = 200

// Parse decodes the raw model content. Content that is not JSON yields a
// MalformedResponseError. Valid JSON that is not an object is treated as an
// empty object so that it falls through to repair and default.
func Parse(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &MalformedResponseError{Excerpt: excerpt(raw), Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected trailing data after JSON value")
		}
		return nil, &MalformedResponseError{Excerpt: excerpt(raw), Err: err}
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return doc, nil
}

// Validate checks a decoded document against the analysis rules and converts
// it. Unknown keys are ignored. All issues are reported at once.
func Validate(doc map[string]any) (Analysis, error) {
	var c checker
	var a Analysis

	if stats, ok := doc["stats"].(map[string]any); ok {
		a.Stats.TotalErrors = c.count(stats, "stats", "total_fautes")
		a.Stats.SpellingErrors = c.count(stats, "stats", "fautes_orthographe")
		a.Stats.GrammarErrors = c.count(stats, "stats", "fautes_grammaire")
		a.Stats.ConjugationErrors = c.count(stats, "stats", "fautes_conjugaison")
		a.Stats.CorrectWordsPercentage = c.percentage(stats, "stats", "pourcentage_mots_bien_orthographies")
	} else {
		c.add("stats: missing or not an object")
	}

	a.GeneralMessage = c.nonEmpty(doc, "", "message_general")

	if items, ok := doc["fautes"].([]any); ok {
		a.ErrorsBySentence = make([]SentenceCorrection, 0, len(items))
		for i, item := range items {
			path := fmt.Sprintf("fautes[%d]", i)
			obj, ok := item.(map[string]any)
			if !ok {
				c.add(path + ": not an object")
				continue
			}
			a.ErrorsBySentence = append(a.ErrorsBySentence, SentenceCorrection{
				SentenceOrder:     c.order(obj, path, "sentence_order_number"),
				StudentSentence:   c.text(obj, path, "texte_eleve"),
				CorrectedSentence: c.text(obj, path, "correction"),
				Explanation:       c.text(obj, path, "explication"),
				Rule:              c.text(obj, path, "regle"),
			})
		}
	} else {
		c.add("fautes: missing or not an array")
	}

	a.PositiveConclusion = c.nonEmpty(doc, "", "conclusion_positive")

	if len(c.issues) > 0 {
		return Analysis{}, &SchemaValidationError{Issues: c.issues}
	}
	return a, nil
}

type checker struct {
	issues []string
}

func (c *checker) add(issue string) {
	c.issues = append(c.issues, issue)
}

func (c *checker) field(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func (c *checker) integer(obj map[string]any, path, key string) (int, bool) {
	v, present := obj[key]
	if !present {
		c.add(c.field(path, key) + ": missing")
		return 0, false
	}
	n, ok := asInt(v)
	if !ok {
		c.add(c.field(path, key) + ": not an integer")
		return 0, false
	}
	return n, true
}

func (c *checker) count(obj map[string]any, path, key string) int {
	n, ok := c.integer(obj, path, key)
	if ok && n < 0 {
		c.add(fmt.Sprintf("%s: %d is negative", c.field(path, key), n))
	}
	return n
}

func (c *checker) percentage(obj map[string]any, path, key string) int {
	n, ok := c.integer(obj, path, key)
	if ok && (n < 0 || n > 100) {
		c.add(fmt.Sprintf("%s: %d is outside 0..100", c.field(path, key), n))
	}
	return n
}

func (c *checker) order(obj map[string]any, path, key string) int {
	n, ok := c.integer(obj, path, key)
	if ok && n < 1 {
		c.add(fmt.Sprintf("%s: %d is not positive", c.field(path, key), n))
	}
	return n
}

func (c *checker) text(obj map[string]any, path, key string) string {
	v, present := obj[key]
	if !present {
		c.add(c.field(path, key) + ": missing")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		c.add(c.field(path, key) + ": not a string")
		return ""
	}
	return s
}

func (c *checker) nonEmpty(obj map[string]any, path, key string) string {
	s := c.text(obj, path, key)
	if _, isString := obj[key].(string); isString && strings.TrimSpace(s) == "" {
		c.add(c.field(path, key) + ": empty")
	}
	return s
}

// asInt accepts JSON integers, including integral floats such as 3.0.
func asInt(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

func excerpt(raw string) string {
	runes := []rune(strings.TrimSpace(raw))
	if len(runes) <= excerptLimit {
		return string(runes)
	}
	return string(runes[:excerptLimit]) + "..."
}
