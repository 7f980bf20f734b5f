package correction

// SchemaName is the name under which the response schema is sent to the model.
const SchemaName = "dictee_analysis"

// Stats holds the aggregate error counts of one correction.
type Stats struct {
	TotalErrors            int `json:"total_fautes"`
	SpellingErrors         int `json:"fautes_orthographe"`
	GrammarErrors          int `json:"fautes_grammaire"`
	ConjugationErrors      int `json:"fautes_conjugaison"`
	CorrectWordsPercentage int `json:"pourcentage_mots_bien_orthographies"`
}

// SentenceCorrection is the analysis of one sentence that contains errors.
// StudentSentence marks errors in **bold**, CorrectedSentence marks fixes in *italic*.
type SentenceCorrection struct {
	SentenceOrder     int    `json:"sentence_order_number"`
	StudentSentence   string `json:"texte_eleve"`
	CorrectedSentence string `json:"correction"`
	Explanation       string `json:"explication"`
	Rule              string `json:"regle"`
}

// Analysis is a fully valid correction result.
type Analysis struct {
	Stats              Stats                `json:"stats"`
	GeneralMessage     string               `json:"message_general"`
	ErrorsBySentence   []SentenceCorrection `json:"fautes"`
	PositiveConclusion string               `json:"conclusion_positive"`
}

// IsPerfect reports whether the copy had no error at all.
func (a Analysis) IsPerfect() bool {
	return a.Stats.TotalErrors == 0
}

// ResponseSchema returns the JSON schema the model must follow. Every object
// is closed and lists all its properties as required so that providers with a
// strict structured-output mode accept it.
func ResponseSchema() map[string]any {
	count := func(desc string) map[string]any {
		return map[string]any{"type": "integer", "minimum": 0, "description": desc}
	}
	text := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}

	stats := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"total_fautes":       count("Nombre total de fautes"),
			"fautes_orthographe": count("Nombre de fautes d'orthographe"),
			"fautes_grammaire":   count("Nombre de fautes de grammaire"),
			"fautes_conjugaison": count("Nombre de fautes de conjugaison"),
			"pourcentage_mots_bien_orthographies": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Pourcentage de mots bien écrits (0-100)",
			},
		},
		"required": []string{
			"total_fautes",
			"fautes_orthographe",
			"fautes_grammaire",
			"fautes_conjugaison",
			"pourcentage_mots_bien_orthographies",
		},
		"additionalProperties": false,
	}

	faute := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentence_order_number": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"description": "Position de la phrase dans la dictée (commence à 1).",
			},
			"texte_eleve": text("Phrase soumise par l'élève. Chaque mot ou expression contenant une erreur doit être en gras (**erreur**)."),
			"correction":  text("Phrase corrigée sans erreur. Chaque mot ou expression corrigé doit être en italique (*correction*)."),
			"explication": text("Explique pourquoi c'est une erreur. Les mots fautifs sont en **gras**, les mots corrigés en *italique*. Plusieurs explications se présentent en liste."),
			"regle":       text("Règle expliquée clairement avec des exemples. La règle est en **gras**, les exemples en *italique*."),
		},
		"required":             []string{"sentence_order_number", "texte_eleve", "correction", "explication", "regle"},
		"additionalProperties": false,
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stats":               stats,
			"message_general":     text("Message général qui donne l'appréciation globale de la dictée."),
			"fautes":              map[string]any{"type": "array", "items": faute},
			"conclusion_positive": text("Conclusion positive et motivante basée sur le profil et les résultats de l'élève."),
		},
		"required":             []string{"stats", "message_general", "fautes", "conclusion_positive"},
		"additionalProperties": false,
	}
}
