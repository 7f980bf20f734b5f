package correction

import "strings"

// Fallback texts used by Repair and DefaultAnalysis.
const (
	DefaultGeneralMessage     = "Analyse terminée"
	DefaultPositiveConclusion = "Continue tes efforts, tu progresses bien !"
	DefaultStudentSentence    = "Texte non disponible"
	DefaultCorrectedSentence  = "Correction non disponible"
	DefaultExplanation        = "Je n'ai pas d'explication à te fournir"
	DefaultRule               = "Il n'y a pas de règle spécifique"
)

// Repair builds a new document from a candidate that failed validation,
// filling every missing or empty field with its fallback. The input is not
// modified. The result still has to pass Validate: stats are taken as a
// whole and are not patched field by field.
func Repair(doc map[string]any) map[string]any {
	out := make(map[string]any, 4)

	if stats, ok := doc["stats"].(map[string]any); ok {
		out["stats"] = stats
	} else if legacy, ok := doc["bilan_global"].(map[string]any); ok {
		out["stats"] = legacy
	} else {
		out["stats"] = defaultStatsDocument()
	}

	out["message_general"] = textOr(doc["message_general"], DefaultGeneralMessage)

	items, _ := doc["fautes"].([]any)
	fautes := make([]any, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		student := obj["texte_eleve"]
		if !isText(student) {
			student = obj["texte_noa"]
		}
		fautes = append(fautes, map[string]any{
			"sentence_order_number": positiveOr(obj["sentence_order_number"], i+1),
			"texte_eleve":           textOr(student, DefaultStudentSentence),
			"correction":            textOr(obj["correction"], DefaultCorrectedSentence),
			"explication":           textOr(obj["explication"], DefaultExplanation),
			"regle":                 textOr(obj["regle"], DefaultRule),
		})
	}
	out["fautes"] = fautes

	out["conclusion_positive"] = textOr(doc["conclusion_positive"], DefaultPositiveConclusion)
	return out
}

// DefaultAnalysis is the result used when neither the model output nor its
// repair is valid. It reports a perfect copy.
func DefaultAnalysis() Analysis {
	return Analysis{
		Stats: Stats{
			CorrectWordsPercentage: 100,
		},
		GeneralMessage:     DefaultGeneralMessage,
		ErrorsBySentence:   []SentenceCorrection{},
		PositiveConclusion: DefaultPositiveConclusion,
	}
}

func defaultStatsDocument() map[string]any {
	return map[string]any{
		"total_fautes":                        0,
		"fautes_orthographe":                  0,
		"fautes_grammaire":                    0,
		"fautes_conjugaison":                  0,
		"pourcentage_mots_bien_orthographies": 100,
	}
}

func isText(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func textOr(v any, def string) string {
	if isText(v) {
		return v.(string)
	}
	return def
}

func positiveOr(v any, def int) int {
	if n, ok := asInt(v); ok && n > 0 {
		return n
	}
	return def
}
