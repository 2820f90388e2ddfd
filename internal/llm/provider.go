package llm

import (
	"fmt"
	"strings"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

// Provider constants
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// NewClient creates a narrative generator based on the provider name.
// Returns an error if the provider is unknown or the API key is empty
// (except for mock).
func NewClient(provider, apiKey string) (domain.NarrativeGenerator, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey), nil

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return NewAnthropicClient(apiKey), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown narrative provider: %s (valid options: openai, anthropic, mock)", provider)
	}
}

// narrativeInput renders the prompt payload shared by all providers.
func narrativeInput(symptom string, hypothesis *domain.Hypothesis, observations []domain.ToolObservation) string {
	var sb strings.Builder
	sb.WriteString("Symptom: ")
	sb.WriteString(symptom)
	sb.WriteString("\nCause category: ")
	sb.WriteString(string(hypothesis.DebtType))
	sb.WriteString("\nCausal chain:\n")
	for i, step := range hypothesis.CausalChain {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
	}
	fmt.Fprintf(&sb, "Confidence: %.0f%%\n", hypothesis.Confidence*100)
	if len(observations) > 0 {
		sb.WriteString("Evidence gathered:\n")
		for _, obs := range observations {
			fmt.Fprintf(&sb, "  - %s: %s\n", obs.ToolName, obs.Detail)
		}
	}
	return sb.String()
}
