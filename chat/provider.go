package chat

import "strings"

// Provider identifies which AI backend a conversation belongs to. Each
// provider keeps its own history and theme color.
type Provider int

const (
	Claude Provider = iota
	Grok
	OpenAI
	Gemini

	providerCount
)

// ParseProvider maps a -provider flag value to a Provider. Unknown names
// fall back to Claude.
func ParseProvider(name string) Provider {
	switch strings.ToLower(name) {
	case "claude":
		return Claude
	case "grok":
		return Grok
	case "gpt", "openai":
		return OpenAI
	case "gemini":
		return Gemini
	default:
		return Claude
	}
}

// Name returns the provider's display name.
func (p Provider) Name() string {
	switch p {
	case Grok:
		return "Grok"
	case OpenAI:
		return "GPT"
	case Gemini:
		return "Gemini"
	default:
		return "Claude"
	}
}

// Hex returns the provider's theme color.
func (p Provider) Hex() string {
	switch p {
	case Grok:
		return "#b8bcff"
	case OpenAI:
		return "#74aa9c"
	case Gemini:
		return "#4e8cf0"
	default:
		return "#e8a87c"
	}
}

// Next cycles to the following provider; bound to F2 in the UI.
func (p Provider) Next() Provider {
	return (p + 1) % providerCount
}
