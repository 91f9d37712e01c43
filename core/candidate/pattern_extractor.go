package candidate

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/siherrmann/tripler/helper"
	"github.com/siherrmann/tripler/model"
)

const (
	// negationPenalty is subtracted from every candidate of a negated sentence
	negationPenalty = 0.2
	// entityBoost is added per side that matches a recognized named entity
	entityBoost = 0.05
)

// entity matches a capitalized noun phrase like "University of Oxford" or "Smith et al. (2022)"
const entity = `[A-Z][\p{L}\p{N}'&\-]*\.?(?:\s+(?:(?:of|for|and the|the)\s+)?[A-Z][\p{L}\p{N}'&\-]*\.?)*(?:\s+et\s+al\.?)?(?:\s+\(\d{4}\))?`

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true, "without": true,
}

// leadingDeterminers are capitalized words that start a sentence but never an entity
var leadingDeterminers = []string{"The ", "This ", "That ", "These ", "Those ", "Our ", "Their "}

var pronouns = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"We": true, "Our": true, "It": true, "Its": true, "They": true, "Their": true,
	"He": true, "She": true, "His": true, "Her": true, "A": true, "An": true,
}

var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true, "al": true,
	"inc": true, "st": true, "vs": true, "fig": true, "no": true, "e.g": true, "i.e": true,
}

// rule maps a surface cue between two entities to a relation
type rule struct {
	relation   model.RelationType
	pattern    *regexp.Regexp
	confidence float64
	swap       bool // Passive voice, the object entity is the semantic subject
}

func newRule(relation model.RelationType, cue string, confidence float64, swap bool) rule {
	return rule{
		relation:   relation,
		pattern:    regexp.MustCompile(`(` + entity + `)\s*,?\s+(?i:` + cue + `)\s+(?:the\s+)?(` + entity + `)`),
		confidence: confidence,
		swap:       swap,
	}
}

// defaultRules are ordered by relation, explicit cues carry a higher confidence than vague ones
var defaultRules = []rule{
	newRule(model.RelationAffiliation, `works?\s+(?:at|for)`, 0.9, false),
	newRule(model.RelationAffiliation, `(?:(?:is|are|was|were)\s+)?affiliated\s+with`, 0.9, false),
	newRule(model.RelationAffiliation, `(?:(?:is|was)\s+)?(?:an?\s+)?(?:[a-z]+\s+)?(?:researcher|professor|scientist|lecturer|student)\s+at`, 0.9, false),
	newRule(model.RelationAffiliation, `at`, 0.6, false),
	newRule(model.RelationAuthorship, `(?:wrote|authored)`, 0.9, false),
	newRule(model.RelationAuthorship, `(?:was|were)\s+(?:written|authored)\s+by`, 0.9, true),
	newRule(model.RelationCitation, `(?:cites?|cited|references|referenced)`, 0.85, false),
	newRule(model.RelationBuildsOn, `(?:builds?|built)\s+(?:up)?on`, 0.75, false),
	newRule(model.RelationBuildsOn, `(?:extends|extended|improves\s+upon|(?:is|was)\s+based\s+on|(?:is|was)\s+inspired\s+by)`, 0.75, false),
	newRule(model.RelationStudies, `(?:stud(?:y|ies|ied)|investigat(?:es|ed)|analy[sz](?:es|ed)|examin(?:es|ed)|explor(?:es|ed))`, 0.8, false),
	newRule(model.RelationCollaboration, `(?:collaborat(?:es|ed)|co-authored|worked\s+jointly)\s+with`, 0.85, false),
	newRule(model.RelationFunding, `(?:(?:was|were|is|are)\s+)?(?:funded|supported|sponsored)\s+by`, 0.85, true),
	newRule(model.RelationFunding, `(?:funds|sponsors)`, 0.8, false),
	newRule(model.RelationSupervision, `(?:supervis(?:es|ed)|advis(?:es|ed)|mentor(?:s|ed))`, 0.85, false),
	newRule(model.RelationSupervision, `(?:was|were)\s+(?:supervised|advised|mentored)\s+by`, 0.85, true),
	newRule(model.RelationPublication, `(?:(?:was|were|is|are)\s+)?(?:published|presented)\s+(?:in|at)`, 0.85, false),
	newRule(model.RelationPublication, `appeared\s+in`, 0.8, false),
	newRule(model.RelationContribution, `(?:contributed\s+to|pioneered|developed|introduced)`, 0.75, false),
}

// PatternExtractor finds candidate triples by matching relation cues between
// capitalized noun phrases, sentence by sentence
type PatternExtractor struct {
	rules      []rule
	recognizer EntityRecognizeFunc
	log        *slog.Logger
}

// PatternOption configures a PatternExtractor
type PatternOption func(*PatternExtractor)

// WithEntityRecognizer boosts candidates whose entities are recognized named entities
func WithEntityRecognizer(recognizer EntityRecognizeFunc) PatternOption {
	return func(p *PatternExtractor) { p.recognizer = recognizer }
}

// WithLogger sets the logger for recognizer failures
func WithLogger(logger *slog.Logger) PatternOption {
	return func(p *PatternExtractor) { p.log = helper.LoggerOrDiscard(logger) }
}

// NewPatternExtractor creates a pattern extractor with the default rule table
func NewPatternExtractor(opts ...PatternOption) *PatternExtractor {
	p := &PatternExtractor{
		rules: defaultRules,
		log:   helper.DiscardLogger(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type match struct {
	start  int
	triple model.Triple
}

type tripleKey struct {
	subject  string
	relation model.RelationType
	object   string
}

// Extract implements Extractor
func (p *PatternExtractor) Extract(text string) []model.Triple {
	if strings.TrimSpace(text) == "" {
		return []model.Triple{}
	}

	entities := p.recognize(text)

	triples := []model.Triple{}
	seen := map[tripleKey]int{}

	for _, sentence := range splitSentences(text) {
		penalty := 0.0
		if hasNegation(sentence) {
			penalty = negationPenalty
		}

		var matches []match
		for _, r := range p.rules {
			for _, m := range r.pattern.FindAllStringSubmatchIndex(sentence, -1) {
				subject := cleanEntity(sentence[m[2]:m[3]])
				object := cleanEntity(sentence[m[4]:m[5]])
				if r.swap {
					subject, object = object, subject
				}
				if !validEntity(subject) || !validEntity(object) || strings.EqualFold(subject, object) {
					continue
				}

				confidence := r.confidence - penalty
				confidence += entityBoost * float64(countRecognized(entities, subject, object))

				matches = append(matches, match{
					start:  m[0],
					triple: model.NewTriple(subject, r.relation, object, confidence),
				})
			}
		}

		slices.SortStableFunc(matches, func(a, b match) int { return a.start - b.start })

		for _, m := range matches {
			key := tripleKey{
				subject:  strings.ToLower(m.triple.Subject),
				relation: m.triple.Relation,
				object:   strings.ToLower(m.triple.Object),
			}
			if i, ok := seen[key]; ok {
				if m.triple.Confidence > triples[i].Confidence {
					triples[i] = m.triple
				}
				continue
			}
			seen[key] = len(triples)
			triples = append(triples, m.triple)
		}
	}

	return triples
}

func (p *PatternExtractor) recognize(text string) []string {
	if p.recognizer == nil {
		return nil
	}
	entities, err := p.recognizer(text)
	if err != nil {
		p.log.Warn("Entity recognition failed, continuing without boost", slog.String("error", err.Error()))
		return nil
	}
	return entities
}

func countRecognized(entities []string, sides ...string) int {
	count := 0
	for _, side := range sides {
		lower := strings.ToLower(side)
		for _, e := range entities {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" && (strings.Contains(lower, e) || strings.Contains(e, lower)) {
				count++
				break
			}
		}
	}
	return count
}

// splitSentences splits on terminal punctuation followed by whitespace and a
// capital letter, ignoring common abbreviations like "Dr." and "et al."
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.IsUpper(runes[j]) {
			continue
		}
		if runes[i] == '.' && abbreviations[strings.ToLower(lastWord(runes[start:i]))] {
			continue
		}
		sentences = append(sentences, string(runes[start:i+1]))
		start = j
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}

	return sentences
}

func lastWord(runes []rune) string {
	i := len(runes)
	for i > 0 && !unicode.IsSpace(runes[i-1]) && runes[i-1] != '(' {
		i--
	}
	return string(runes[i:])
}

func hasNegation(sentence string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if negationWords[word] {
			return true
		}
	}
	return false
}

// cleanEntity strips leading determiners and a sentence-final period
func cleanEntity(s string) string {
	s = strings.TrimSpace(s)
	for _, d := range leadingDeterminers {
		if strings.HasPrefix(s, d) {
			s = strings.TrimSpace(strings.TrimPrefix(s, d))
			break
		}
	}
	if strings.HasSuffix(s, ".") && !abbreviations[strings.ToLower(strings.TrimSuffix(lastWord([]rune(s)), "."))] {
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func validEntity(s string) bool {
	if s == "" || pronouns[s] {
		return false
	}
	r := []rune(s)
	return unicode.IsUpper(r[0])
}
