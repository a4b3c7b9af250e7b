package candidate

import (
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func TestProfileText(t *testing.T) {
	c := &Candidate{
		Name:        "Ada",
		LinkedInURL: "https://linkedin.com/in/ada",
		Skills:      []kernel.Skill{"Go", "SQL"},
		WorkHistory: []WorkEntry{{Company: "Acme", Title: "Engineer", Current: true}},
	}

	text := ProfileText(c)
	assert.Contains(t, text, "Name: Ada\n")
	assert.Contains(t, text, "LinkedIn: https://linkedin.com/in/ada\n")
	assert.Contains(t, text, "Skills: Go, SQL\n")
	assert.Contains(t, text, `"company":"Acme"`)
	assert.Contains(t, text, "Education: []")
}

func TestRecentWork(t *testing.T) {
	c := &Candidate{}
	assert.Equal(t, "[no jobs listed]", RecentWork(c, 2))

	c.WorkHistory = []WorkEntry{
		{Company: "A", Title: "Intern"},
		{Company: "B", Title: "Dev"},
		{Company: "C", Title: "Lead"},
	}
	assert.Equal(t, "Dev at B, Lead at C", RecentWork(c, 2))
}

func TestChatText(t *testing.T) {
	assert.Equal(t, "q\na", ChatText("q", "a"))
}
