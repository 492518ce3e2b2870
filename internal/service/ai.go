package service

import (
	"context"
	"errors"

	"devsim-backend/internal/conf"
	"devsim-backend/internal/data"

	"github.com/cloudwego/eino/components/model"
)

// ErrNotImplemented is returned by operations that are declared but not
// yet built.
var ErrNotImplemented = errors.New("issue drafting not implemented")

// RepoInfo is the repository metadata the drafting service consumes.
type RepoInfo struct {
	RepoName    string `json:"repo_name"`
	Description string `json:"description"`
}

// AIService drafts GitHub issues from repository metadata. The service
// is wired up but intentionally implements no generation logic yet.
type AIService struct {
	chatModel model.BaseChatModel
	modelName string
}

// NewAIService builds the chat model client for the configured default
// model.
func NewAIService(ctx context.Context, factory *data.ClientFactory, cfg conf.AI) (*AIService, error) {
	if cfg.DefaultModel == "" {
		return nil, errors.New("ai default_model is required when ai is enabled")
	}

	clientName := factory.ResolveClient(cfg.DefaultModel)
	chatModel, err := factory.CreateChatModel(ctx, clientName, cfg.DefaultModel)
	if err != nil {
		return nil, err
	}

	return &AIService{
		chatModel: chatModel,
		modelName: cfg.DefaultModel,
	}, nil
}

// ModelName returns the configured model.
func (s *AIService) ModelName() string {
	return s.modelName
}

// DraftIssue generates an issue body for the given repository.
// TODO: prompt the chat model with the repo metadata and return the draft.
func (s *AIService) DraftIssue(ctx context.Context, repo RepoInfo) (string, error) {
	return "", ErrNotImplemented
}
