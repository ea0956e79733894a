package openai

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// newChatClient creates an OpenAI-compatible chat client for extraction
// and verification calls. The "none" token keeps local services that skip
// authentication happy.
func newChatClient(host, model string) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithModel(model),
	)
}

// generate runs a single-turn prompt at temperature 0 and returns the raw
// response text. An empty response is not an error; callers decide how to
// degrade.
func generate(ctx context.Context, client llms.Model, prompt string, opts ...llms.CallOption) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	callOpts := append([]llms.CallOption{llms.WithTemperature(0.0)}, opts...)
	response, err := client.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", nil
	}
	return response.Choices[0].Content, nil
}

// stripFences removes markdown code-fence markers that models emit despite
// instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
