package correction

import (
	"fmt"
	"strings"
)

const (
	defaultFirstName    = "non renseigné"
	defaultAddressee    = "ton élève"
	defaultDescription  = "Élève motivé et curieux"
	defaultSchoolLevels = "école élémentaire"
	defaultGradeRange   = "CE1 à CM2"
)

// UserDirective is the fixed user message sent alongside the system prompt.
const UserDirective = "Analyse cette dictée selon les instructions données et réponds en JSON avec la structure exacte demandée."

// PromptInput carries everything the prompt depends on. Optional fields left
// empty are replaced by neutral French defaults.
type PromptInput struct {
	ReferenceText string
	StudentText   string
	Age           int
	FirstName     string
	Description   string
	LevelCodes    []string
}

// Validate rejects inputs that cannot produce a meaningful correction.
func (in PromptInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.ReferenceText) == "" {
		missing = append(missing, "reference text")
	}
	if strings.TrimSpace(in.StudentText) == "" {
		missing = append(missing, "student text")
	}
	if in.Age <= 0 {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// Prompts is the pair of messages sent to the model.
type Prompts struct {
	System string
	User   string
}

// BuildPrompts renders the teaching instructions for one submission. The
// output depends only on its input.
func BuildPrompts(in PromptInput) Prompts {
	firstName := orDefault(in.FirstName, defaultFirstName)
	addressee := orDefault(in.FirstName, defaultAddressee)
	description := orDefault(in.Description, defaultDescription)

	levels := joinLevels(in.LevelCodes)
	roleLevels := orDefault(levels, defaultSchoolLevels)
	profileLevels := orDefault(levels, defaultGradeRange)

	var b strings.Builder
	fmt.Fprintf(&b, "Tu es un professeur d'école élémentaire (niveaux : %s).\n", roleLevels)
	b.WriteString("Ton rôle est d'aider ton élève à progresser en orthographe, grammaire et conjugaison à travers la correction et l'analyse de ses dictées.\n\n")

	b.WriteString("# Règles générales\n")
	b.WriteString("- Tu corriges avec bienveillance et pédagogie.\n")
	b.WriteString("- Tu gardes un ton **décontracté et proche de l'enfant**, avec toujours une petite blague ou comparaison amusante pour rendre l'apprentissage plus fun.\n")
	fmt.Fprintf(&b, "- Tu expliques chaque faute en **termes simples**, adaptés à un enfant de %d ans.\n", in.Age)
	b.WriteString("- Tu donnes toujours la **règle associée** pour que l'élève comprenne et progresse.\n")
	fmt.Fprintf(&b, "- Tu t'adresses directement à l'élève, en utilisant son prénom %s et en le tutoyant.\n", firstName)
	b.WriteString("- Tu fais des réponses personnalisées en fonction de la présentation de l'élève et de son niveau.\n")
	b.WriteString("- Dans chaque phrase de l'élève, les mots fautifs sont en gras (**mot**). Dans chaque phrase corrigée, les mots corrigés sont en italique (*mot*).\n")
	b.WriteString("- Ta réponse doit toujours finir par une **conclusion positive et motivante**.\n\n")

	b.WriteString("# Profil de l'élève\n")
	fmt.Fprintf(&b, "- Prénom : %s\n", firstName)
	fmt.Fprintf(&b, "- Âge : %d ans\n", in.Age)
	fmt.Fprintf(&b, "- Niveaux : %s\n", profileLevels)
	fmt.Fprintf(&b, "- Présentation : %s\n\n", description)

	b.WriteString("# Dictée correcte\n")
	b.WriteString(strings.TrimSpace(in.ReferenceText))
	b.WriteString("\n\n# Copie de l'élève\n")
	b.WriteString(strings.TrimSpace(in.StudentText))
	b.WriteString("\n\n")

	b.WriteString("# Tâches\n")
	b.WriteString("1. Donne un **bilan global** :\n")
	b.WriteString("   - Nombre total de fautes\n")
	b.WriteString("   - Répartition : fautes d'orthographe / de grammaire / de conjugaison\n")
	b.WriteString("   - % de mots bien orthographiés (nombre entier entre 0 et 100)\n\n")
	b.WriteString("2. Analyse **chaque faute** en regroupant par phrase, dans l'ordre de lecture :\n")
	fmt.Fprintf(&b, "   - a. Ce que %s a écrit\n", addressee)
	b.WriteString("   - b. La bonne correction\n")
	b.WriteString("   - c. Pourquoi c'est une faute\n")
	b.WriteString("   - d. La règle expliquée simplement\n\n")
	fmt.Fprintf(&b, "3. Termine par une **conclusion encourageante** pour motiver %s.\n", addressee)

	return Prompts{System: b.String(), User: UserDirective}
}

func joinLevels(codes []string) string {
	kept := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, ", ")
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
