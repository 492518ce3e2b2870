package data

import (
	"context"
	"fmt"
	"strings"

	"devsim-backend/internal/conf"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Keyword mapping from model name to client.
var clientKeywords = map[string][]string{
	"openai":   {"gpt", "o1", "o3", "o4", "chatgpt"},
	"claude":   {"claude"},
	"deepseek": {"deepseek"},
	"gemini":   {"gemini"},
}

// ClientFactory builds chat model clients from the AI config.
type ClientFactory struct {
	clients map[string]conf.Client
}

// NewClientFactory creates a client factory.
func NewClientFactory(cfg conf.AI) *ClientFactory {
	return &ClientFactory{
		clients: cfg.Clients,
	}
}

// CreateChatModel creates a ChatModel for the given client and model name.
func (f *ClientFactory) CreateChatModel(ctx context.Context, clientName, modelName string) (model.BaseChatModel, error) {
	client, ok := f.clients[clientName]
	if !ok {
		return nil, fmt.Errorf("unknown client: %s", clientName)
	}

	switch clientName {
	case "claude":
		return claude.NewChatModel(ctx, &claude.Config{
			BaseURL:   &client.BaseURL,
			APIKey:    client.APIKey,
			Model:     modelName,
			MaxTokens: 4096,
		})

	case "deepseek":
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			BaseURL: client.BaseURL,
			APIKey:  client.APIKey,
			Model:   modelName,
		})

	case "gemini":
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: client.APIKey,
			HTTPOptions: genai.HTTPOptions{
				BaseURL: client.BaseURL,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: genaiClient,
			Model:  modelName,
		})

	default:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: client.BaseURL,
			APIKey:  client.APIKey,
			Model:   modelName,
		})
	}
}

// ResolveClient picks the client for a model name by keyword match,
// falling back to openai.
func (f *ClientFactory) ResolveClient(modelName string) string {
	modelLower := strings.ToLower(modelName)
	for clientName, keywords := range clientKeywords {
		for _, keyword := range keywords {
			if strings.Contains(modelLower, keyword) {
				if _, ok := f.clients[clientName]; ok {
					return clientName
				}
			}
		}
	}
	return "openai"
}
