package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	lastJSON   bool
}

func (f *fakeLLM) complete(ctx context.Context, system, user string, jsonOutput bool) (string, error) {
	f.lastSystem, f.lastUser, f.lastJSON = system, user, jsonOutput
	return f.reply, f.err
}

var (
	_ candidate.ProfileExtractor = (*Extractor)(nil)
	_ candidate.Coach            = (*Extractor)(nil)
	_ job.Extractor              = (*Extractor)(nil)
)

func TestExtractProfile(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n" + `{"name":"Ada","skills":["Go","SQL"],"workHistory":[{"company":"Acme","title":"Engineer","current":true}]}` + "\n```"}
	e := &Extractor{llm: llm}

	profile, err := e.ExtractProfile(context.Background(), "Ada Lovelace, engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
	require.Len(t, profile.WorkHistory, 1)
	assert.True(t, profile.WorkHistory[0].Current)
	assert.True(t, llm.lastJSON)
	assert.Contains(t, llm.lastUser, "Ada Lovelace, engineer at Acme")
}

func TestExtractProfileInvalidJSON(t *testing.T) {
	e := &Extractor{llm: &fakeLLM{reply: "Sorry, I can't help with that"}}

	_, err := e.ExtractProfile(context.Background(), "some text")
	assert.Error(t, err)
}

func TestExtractJob(t *testing.T) {
	e := &Extractor{llm: &fakeLLM{reply: `{"skillsNeeded":["Go"],"seniority":"Senior","description":"Build APIs","location":"Lima","workSetup":"Hybrid"}`}}

	extracted, err := e.ExtractJob(context.Background(), "We need a senior Go engineer in Lima")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, extracted.SkillsNeeded)
	assert.Equal(t, "Senior", extracted.Seniority)
	assert.Equal(t, "Hybrid", extracted.WorkSetup)
}

func TestAnswerUsesProfileContext(t *testing.T) {
	llm := &fakeLLM{reply: "  **Next step**: build a portfolio  "}
	e := &Extractor{llm: llm}

	c := &candidate.Candidate{
		Name:   "Ada",
		Skills: []kernel.Skill{"Go"},
		Ikigai: candidate.IkigaiScores{Mission: 8},
		WorkHistory: []candidate.WorkEntry{
			{Company: "Acme", Title: "Engineer"},
		},
	}

	answer, err := e.Answer(context.Background(), c, "What should I learn next?")
	require.NoError(t, err)
	assert.Equal(t, "**Next step**: build a portfolio", answer)
	assert.False(t, llm.lastJSON)
	assert.Contains(t, llm.lastSystem, "Mission:8")
	assert.Contains(t, llm.lastSystem, "Passion:-")
	assert.Contains(t, llm.lastSystem, "Engineer at Acme")
	assert.Contains(t, llm.lastUser, "What should I learn next?")
}

func TestAnswerErrors(t *testing.T) {
	e := &Extractor{llm: &fakeLLM{err: errors.New("rate limited")}}
	_, err := e.Answer(context.Background(), &candidate.Candidate{}, "hi")
	assert.Error(t, err)

	e = &Extractor{llm: &fakeLLM{reply: "   "}}
	_, err = e.Answer(context.Background(), &candidate.Candidate{}, "hi")
	assert.Error(t, err)
}
