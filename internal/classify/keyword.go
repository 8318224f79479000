package classify

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sells-group/panel-triage/internal/model"
)

// keywordCategories maps lowercase word prefixes to categories. Earlier
// entries win, so the clinical safety terms are checked first.
var keywordCategories = []struct {
	keyword  string
	category string
}{
	{"safety plan", model.CategoryClinicalStability},
	{"relapse", model.CategoryClinicalStability},
	{"warning signs", model.CategoryClinicalStability},
	{"crisis", model.CategoryClinicalStability},
	{"symptom", model.CategoryClinicalStability},
	{"hospitaliz", model.CategoryClinicalStability},
	{"medication", model.CategoryMedicationAdherence},
	{"refill", model.CategoryMedicationAdherence},
	{"pharmacy", model.CategoryMedicationAdherence},
	{"pill", model.CategoryMedicationAdherence},
	{"injection", model.CategoryMedicationAdherence},
	{"housing", model.CategorySocialStability},
	{"rent", model.CategorySocialStability},
	{"insurance", model.CategorySocialStability},
	{"medicaid", model.CategorySocialStability},
	{"benefits", model.CategorySocialStability},
	{"legal", model.CategorySocialStability},
	{"court", model.CategorySocialStability},
	{"food", model.CategorySocialStability},
	{"psychiatrist", model.CategoryExternalClinicians},
	{"pcp", model.CategoryExternalClinicians},
	{"primary care", model.CategoryExternalClinicians},
	{"specialist", model.CategoryExternalClinicians},
	{"therapist", model.CategoryExternalClinicians},
	{"referral", model.CategoryExternalClinicians},
	{"goal", model.CategoryIndividualAgency},
	{"job", model.CategoryIndividualAgency},
	{"school", model.CategoryIndividualAgency},
	{"hobby", model.CategoryIndividualAgency},
}

// KeywordClassifier categorizes tasks without a language model. It checks a
// fixed keyword table, then falls back to the labeled example sharing the
// most words with the task. Tasks matching neither get an empty category.
type KeywordClassifier struct {
	examples []model.Example
	tokens   []map[string]bool
}

// NewKeywordClassifier creates an offline classifier over examples.
func NewKeywordClassifier(examples []model.Example) *KeywordClassifier {
	k := &KeywordClassifier{examples: examples, tokens: make([]map[string]bool, len(examples))}
	for i, ex := range examples {
		k.tokens[i] = tokenize(ex.Task)
	}
	return k
}

// Classify implements Classifier. It never fails.
func (k *KeywordClassifier) Classify(_ context.Context, task string) (string, error) {
	lower := strings.ToLower(task)
	for _, kc := range keywordCategories {
		if hasWordPrefix(lower, kc.keyword) {
			return kc.category, nil
		}
	}
	return k.nearestExample(task), nil
}

func (k *KeywordClassifier) nearestExample(task string) string {
	words := tokenize(task)
	best, bestScore := "", 0.0
	for i, ex := range k.examples {
		if s := jaccard(words, k.tokens[i]); s > bestScore {
			best, bestScore = ex.Category, s
		}
	}
	return best
}

// hasWordPrefix reports whether kw occurs in s starting at a word boundary,
// so "rent" matches "rental" but not "parent".
func hasWordPrefix(s, kw string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		i = at + 1
	}
}

func tokenize(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(w) > 2 {
			out[w] = true
		}
	}
	return out
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}
