package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ProfileValue is a profile field the app may send as a string or a number.
type ProfileValue string

// UnmarshalJSON accepts strings, numbers and null.
func (v *ProfileValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ProfileValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("profile value must be a string or number")
	}
	*v = ProfileValue(n.String())
	return nil
}

// or returns v, or fallback when v is blank.
func (v ProfileValue) or(fallback string) string {
	if s := strings.TrimSpace(string(v)); s != "" {
		return s
	}
	return fallback
}

// UserProfile is the optional context the app sends with a chat.
type UserProfile struct {
	Name          ProfileValue `json:"name"`
	Age           ProfileValue `json:"age"`
	CurrentWeight ProfileValue `json:"currentWeight"`
	GoalWeight    ProfileValue `json:"goalWeight"`
	Goal          ProfileValue `json:"goal"`
	ActivityLevel ProfileValue `json:"activityLevel"`
}

var coachTemplate = template.Must(template.New("coach").Parse(`You are the FitLife Pro coach: an expert personal trainer and certified nutritionist.
{{if .}}
USER CONTEXT:
- Name: {{.Name}}
- Age: {{.Age}} years
- Current weight: {{.CurrentWeight}} kg
- Goal weight: {{.GoalWeight}} kg
- Goal: {{.Goal}}
- Activity level: {{.ActivityLevel}}
{{end}}
INSTRUCTIONS:
- Be motivating and empathetic
- Give practical advice tailored to the user's profile
- Keep answers between 150 and 250 words
- Be specific and give actionable steps
- Celebrate achievements and progress
- Include both training and nutrition tips when relevant
- Reply in the language the user writes in

Answer naturally, like a friend who happens to be a fitness expert.`))

type coachContext struct {
	Name, Age, CurrentWeight, GoalWeight, Goal, ActivityLevel string
}

// BuildCoachPrompt renders the coaching system prompt. A nil profile yields
// the prompt without a user context section.
func BuildCoachPrompt(profile *UserProfile) string {
	var data *coachContext
	if profile != nil {
		data = &coachContext{
			Name:          profile.Name.or("User"),
			Age:           profile.Age.or("N/A"),
			CurrentWeight: profile.CurrentWeight.or("N/A"),
			GoalWeight:    profile.GoalWeight.or("N/A"),
			Goal:          profile.Goal.or("N/A"),
			ActivityLevel: profile.ActivityLevel.or("N/A"),
		}
	}

	var buf bytes.Buffer
	if err := coachTemplate.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

// WithCoachPrompt prepends the coaching prompt when the conversation has
// no system message of its own and a profile was supplied.
func WithCoachPrompt(messages []Message, profile *UserProfile) []Message {
	if profile == nil || HasSystem(messages) {
		return messages
	}
	out := make([]Message, 0, len(messages)+1)
	out = append(out, NewSystemMessage(BuildCoachPrompt(profile)))
	return append(out, messages...)
}

// ProbeMaxTokens caps the key-check request.
const ProbeMaxTokens = 50

// Probe sends a tiny request to confirm the configured key works.
func Probe(ctx context.Context, p Provider) (*Response, error) {
	return p.ChatSync(ctx, []Message{
		NewUserMessage("Reply with OK if you can read this."),
	}, ChatOptions{MaxTokens: ProbeMaxTokens})
}
