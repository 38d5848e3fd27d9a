package groq

import (
	"context"
	"net/http"
	"strings"
	"time"

	"finplay/app/config"
	"finplay/app/service/conversation"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	requestTimeout = 30 * time.Second
	maxReplyTokens = 500
)

var _ conversation.Delegate = (*Client)(nil)

// Client talks to a Groq (or any OpenAI-compatible) chat completion
// endpoint. Retry and backoff are left to the provider side.
type Client struct {
	cfg *config.Config
	llm *openai.LLM
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	llm, err := openai.New(
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithToken(cfg.OpenAI.Token),
		openai.WithModel(cfg.OpenAI.Model),
		openai.WithHTTPClient(&http.Client{
			Timeout: requestTimeout,
		}),
		openai.WithCallback(LogCallbackHandler{}),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create llm client: %w", err)
	}

	return &Client{
		cfg: cfg,
		llm: llm,
	}, nil
}

// Send forwards the user message preceded by the given turns and returns
// the assistant reply.
func (c *Client) Send(ctx context.Context, message string, turns []conversation.Turn) (string, error) {
	content := make([]llms.MessageContent, 0, len(turns)+1)
	for _, turn := range turns {
		content = append(content, llms.TextParts(messageType(turn.Role), turn.Text))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, message))

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	response, err := c.llm.GenerateContent(ctx, content, llms.WithMaxTokens(maxReplyTokens))
	if err != nil {
		return "", oops.Errorf("failed to create chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", oops.Errorf("no chat completion found")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

func messageType(role conversation.Role) llms.ChatMessageType {
	switch role {
	case conversation.RoleSystem:
		return llms.ChatMessageTypeSystem
	case conversation.RoleAssistant:
		return llms.ChatMessageTypeAI
	}

	return llms.ChatMessageTypeHuman
}
