package generation

import "strings"

// Kind identifies the content family a generation request belongs to.
type Kind string

const (
	KindListing    Kind = "listing"
	KindEmail      Kind = "email"
	KindSocialPost Kind = "social-post"
)

// VariationCount is the number of completions produced per request.
const VariationCount = 3

// Temperatures holds the sampling temperature of each variation, by index.
var Temperatures = [VariationCount]float64{0.7, 0.8, 0.9}

var maxTokens = map[Kind]int{
	KindListing:    800,
	KindEmail:      1500,
	KindSocialPost: 600,
}

// MaxTokens returns the completion ceiling for the kind.
func (k Kind) MaxTokens() int { return maxTokens[k] }

// Label is the human-readable name used in error messages ("Failed to generate <label>").
func (k Kind) Label() string { return strings.ReplaceAll(string(k), "-", " ") }

// PromptPair is the system/user message pair sent to the completion API.
type PromptPair struct {
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
}

// Variation is one trimmed completion and the temperature it was sampled at.
type Variation struct {
	Index       int     `json:"index"`
	Temperature float64 `json:"temperature"`
	Text        string  `json:"text"`
}

// Texts returns the variation bodies in index order.
func Texts(vs []Variation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Text
	}
	return out
}
