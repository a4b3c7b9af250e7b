package job

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

const (
	minSkillLength   = 2
	maxSkillLength   = 39
	maxWordsPerSkill = 5
)

var (
	skillSeparators = regexp.MustCompile(`(?i)[,;/.]|\band\b|\bor\b`)

	skillStopWords = map[string]struct{}{
		"and": {}, "or": {}, "the": {}, "a": {}, "an": {}, "to": {}, "of": {}, "for": {}, "with": {},
		"in": {}, "on": {}, "at": {}, "as": {}, "by": {}, "is": {}, "are": {}, "be": {},
		"you": {}, "your": {}, "we": {}, "our": {}, "this": {}, "that": {}, "they": {}, "their": {},
		"will": {}, "responsible": {}, "role": {}, "job": {},
		"requirements": {}, "skills": {}, "experience": {}, "years": {}, "year": {},
	}
)

// ExtractSkillsFallback pulls short skill-like phrases out of a job
// description when the extractor returned none. Chunks are split on
// punctuation and the words "and"/"or", then kept when they are 2..39
// characters, contain a letter, have at most five words and are not a stop
// word. Duplicates are dropped case-insensitively, first spelling wins.
func ExtractSkillsFallback(description string) []kernel.Skill {
	text := strings.ReplaceAll(description, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return []kernel.Skill{}
	}

	seen := make(map[string]struct{})
	skills := make([]kernel.Skill, 0)

	for _, raw := range skillSeparators.Split(text, -1) {
		chunk := strings.TrimSpace(raw)
		n := len([]rune(chunk))
		if n < minSkillLength || n > maxSkillLength {
			continue
		}

		lower := strings.ToLower(chunk)
		if _, stop := skillStopWords[lower]; stop {
			continue
		}
		if len(strings.Fields(chunk)) > maxWordsPerSkill {
			continue
		}
		if !strings.ContainsFunc(chunk, unicode.IsLetter) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}

		seen[lower] = struct{}{}
		skills = append(skills, kernel.Skill(chunk))
	}

	return skills
}
