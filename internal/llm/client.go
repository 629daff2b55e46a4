package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"podcastgen/internal/config"
)

// ErrNotConfigured 未配置任何LLM服务商的API Key
var ErrNotConfigured = errors.New("llm: no provider configured")

// Completer 抽象一次文本补全调用，便于替换/Mock
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ChatClient 基于eino ChatModel的Completer实现
type ChatClient struct {
	chatModel einomodel.BaseChatModel
}

func NewChatClient(chatModel einomodel.BaseChatModel) *ChatClient {
	return &ChatClient{chatModel: chatModel}
}

// Complete 构建单节点图并调用模型，返回完整文本
func (c *ChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	graph := compose.NewGraph[[]*schema.Message, *schema.Message]()
	_ = graph.AddChatModelNode("model", c.chatModel)
	_ = graph.AddEdge(compose.START, "model")
	_ = graph.AddEdge("model", compose.END)
	runnable, err := graph.Compile(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to compile graph: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}
	res, err := runnable.Invoke(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("graph invocation failed: %w", err)
	}
	return res.Content, nil
}

// Stages 流水线各阶段使用的补全能力，原则上可为每个阶段配置不同模型
type Stages struct {
	Analyzer   Completer // 内容精确度分析
	Writer     Completer // 内容大纲生成
	Scripter   Completer // 脚本生成
	Translator Completer // 语言检测与翻译
}

// NewStagesFromSettings 按配置创建各阶段客户端；未配置API Key时返回ErrNotConfigured，
// 由上层降级为无模型模式
func NewStagesFromSettings(ctx context.Context, s *config.Settings) (*Stages, error) {
	build, err := modelBuilder(s)
	if err != nil {
		return nil, err
	}

	analyzer, err := build(ctx, s.AnalyzerModel)
	if err != nil {
		return nil, err
	}
	writer, err := build(ctx, s.WriterModel)
	if err != nil {
		return nil, err
	}
	scripter, err := build(ctx, s.ScripterModel)
	if err != nil {
		return nil, err
	}
	translator, err := build(ctx, s.TranslatorModel)
	if err != nil {
		return nil, err
	}

	return &Stages{
		Analyzer:   analyzer,
		Writer:     writer,
		Scripter:   scripter,
		Translator: translator,
	}, nil
}

type buildFunc func(ctx context.Context, model string) (Completer, error)

func modelBuilder(s *config.Settings) (buildFunc, error) {
	switch s.LLMProvider {
	case "ark":
		if s.ArkAPIKey == "" {
			return nil, ErrNotConfigured
		}
		return func(ctx context.Context, model string) (Completer, error) {
			cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
				APIKey:     s.ArkAPIKey,
				Region:     s.ArkRegion,
				HTTPClient: &http.Client{Timeout: 60 * time.Second},
				Model:      model,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create ark chat model: %w", err)
			}
			return NewChatClient(cm), nil
		}, nil
	case "openai":
		if s.OpenAIKey == "" {
			return nil, ErrNotConfigured
		}
		return func(ctx context.Context, model string) (Completer, error) {
			cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
				APIKey:     s.OpenAIKey,
				BaseURL:    s.OpenAIBase,
				Model:      model,
				HTTPClient: &http.Client{Timeout: 60 * time.Second},
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create openai chat model: %w", err)
			}
			return NewChatClient(cm), nil
		}, nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", s.LLMProvider)
	}
}
