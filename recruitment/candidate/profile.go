package candidate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// MinImportTextLength is the shortest pasted profile we try to extract from
const MinImportTextLength = 30

// ProfileData is the structured profile extracted from pasted text
type ProfileData struct {
	Name        string           `json:"name"`
	WorkHistory []WorkEntry      `json:"workHistory"`
	Education   []EducationEntry `json:"education"`
	Skills      []string         `json:"skills"`
}

// ProfileText builds the text embedded as the candidate's profile vector
func ProfileText(c *Candidate) string {
	work, _ := json.Marshal(nonNil(c.WorkHistory))
	edu, _ := json.Marshal(nonNil(c.Education))

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "LinkedIn: %s\n", c.LinkedInURL)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(kernel.SkillsToStrings(c.Skills), ", "))
	fmt.Fprintf(&b, "WorkHistory: %s\n", work)
	fmt.Fprintf(&b, "Education: %s", edu)
	return b.String()
}

// ChatText is the embedding input for one coach exchange
func ChatText(question, answer string) string {
	return question + "\n" + answer
}

// RecentWork summarizes the last n work entries as "Title at Company"
func RecentWork(c *Candidate, n int) string {
	entries := c.WorkHistory
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	parts := make([]string, 0, len(entries))
	for _, w := range entries {
		parts = append(parts, fmt.Sprintf("%s at %s", w.Title, w.Company))
	}
	if len(parts) == 0 {
		return "[no jobs listed]"
	}
	return strings.Join(parts, ", ")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
