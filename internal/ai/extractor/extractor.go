package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/Abraxas-365/relaymatch/recruitment/job"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const DefaultChatModel = "gpt-4o-mini"

// completer sends one system/user exchange and returns the reply text
type completer interface {
	complete(ctx context.Context, system, user string, jsonOutput bool) (string, error)
}

// Extractor turns pasted text into structured profiles and job fields, and
// answers coach questions. All calls go through the OpenAI chat API.
type Extractor struct {
	llm completer
}

// New creates an extractor backed by OpenAI chat completions
func New(apiKey, model string, opts ...option.RequestOption) *Extractor {
	client := openai.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultChatModel
	}
	return &Extractor{llm: &openAIChat{client: &client, model: model}}
}

// ============================================================================
// Candidate profile
// ============================================================================

const profileSystemPrompt = `You extract candidate profiles from pasted LinkedIn or resume text. Return ONLY valid JSON.`

const profileUserPrompt = `Extract a clean JSON candidate profile.

Fields:
{
  "name": string,
  "workHistory": [{ "company": string, "title": string, "from": string, "to": string, "current": boolean, "description": string }],
  "education": [{ "school": string, "degree": string, "from": string, "to": string, "current": boolean }],
  "skills": string[]
}

If a field is not available use an empty string or an empty array.

Text:
%s`

// ExtractProfile implements candidate.ProfileExtractor
func (e *Extractor) ExtractProfile(ctx context.Context, text string) (*candidate.ProfileData, error) {
	content, err := e.llm.complete(ctx, profileSystemPrompt, fmt.Sprintf(profileUserPrompt, text), true)
	if err != nil {
		return nil, err
	}

	var profile candidate.ProfileData
	if err := decodeJSON(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// ============================================================================
// Job description
// ============================================================================

const jobSystemPrompt = `You are a strict JSON generator. No commentary. No markdown.`

const jobUserPrompt = `From the following job description, extract:
{
  "skillsNeeded": string[],
  "seniority": "junior|mid|senior",
  "description": "1-3 sentence description of the role",
  "location": "the location, if any is mentioned",
  "workSetup": "remote|hybrid|onsite (remote when no location is mentioned)"
}

Job description:
%s`

// ExtractJob implements job.Extractor
func (e *Extractor) ExtractJob(ctx context.Context, description string) (*job.ExtractedJob, error) {
	content, err := e.llm.complete(ctx, jobSystemPrompt, fmt.Sprintf(jobUserPrompt, description), true)
	if err != nil {
		return nil, err
	}

	var extracted job.ExtractedJob
	if err := decodeJSON(content, &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	return &extracted, nil
}

// ============================================================================
// Career coach
// ============================================================================

const coachGuidelines = `Guidelines for your response:
- Be positive, clear, and actionable.
- Never be generic: ground your advice in their profile and previous answers.
- Use markdown formatting (headings, bold, lists) for readability.
- Keep responses under 200 words by default; use lists when possible.
- Suggest next steps or follow-up questions if the user is vague or open-ended.`

// Answer implements candidate.Coach
func (e *Extractor) Answer(ctx context.Context, c *candidate.Candidate, question string) (string, error) {
	answer, err := e.llm.complete(ctx, coachPrompt(c), fmt.Sprintf("User asked: %q\nReply as markdown for an in-app chat.", question), false)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("empty answer from coach")
	}
	return answer, nil
}

func coachPrompt(c *candidate.Candidate) string {
	skills := strings.Join(kernel.SkillsToStrings(c.Skills), ", ")
	if skills == "" {
		skills = "[none]"
	}

	var b strings.Builder
	b.WriteString("You are a career coach AI helping a real candidate. Here is their info:\n")
	fmt.Fprintf(&b, "- **Name**: %s\n", c.Name)
	fmt.Fprintf(&b, "- **Skills**: %s\n", skills)
	fmt.Fprintf(&b, "- **Ikigai**: Passion:%s, Mission:%s, Vocation:%s, Mastery:%s\n",
		scoreOrDash(c.Ikigai.Passion), scoreOrDash(c.Ikigai.Mission),
		scoreOrDash(c.Ikigai.Vocation), scoreOrDash(c.Ikigai.Mastery))
	fmt.Fprintf(&b, "- **Recent Work**: %s\n\n", candidate.RecentWork(c, 2))
	b.WriteString(coachGuidelines)
	return b.String()
}

func scoreOrDash(v int) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprint(v)
}

// decodeJSON tolerates replies wrapped in a markdown code fence
func decodeJSON(content string, v any) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return json.Unmarshal([]byte(content), v)
}

// ============================================================================
// OpenAI transport
// ============================================================================

type openAIChat struct {
	client *openai.Client
	model  string
}

func (o *openAIChat) complete(ctx context.Context, system, user string, jsonOutput bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       openai.ChatModel(o.model),
		Temperature: openai.Float(0),
	}
	if jsonOutput {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		}
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return completion.Choices[0].Message.Content, nil
}
