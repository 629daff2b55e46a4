package pipeline

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/sirupsen/logrus"

	"podcastgen/internal/llm"
	"podcastgen/internal/model"
)

// Sink 持久化落点，每次成功生成最多调用一次
type Sink interface {
	SavePodcast(ctx context.Context, p *model.Podcast) (uint, error)
}

// Orchestrator 串联分类→（扩写）→脚本→语言归一化四个阶段。
// Stages为nil时降级为无模型模式。每次调用独享自己的State，实例本身可并发复用
type Orchestrator struct {
	Stages          *llm.Stages
	Sink            Sink
	DefaultLanguage string
}

func NewOrchestrator(stages *llm.Stages, sink Sink, defaultLanguage string) *Orchestrator {
	if defaultLanguage == "" {
		defaultLanguage = "中文"
	}
	return &Orchestrator{Stages: stages, Sink: sink, DefaultLanguage: defaultLanguage}
}

// Run 执行完整流水线并返回最终状态。精确/模糊分支在这里显式展开：
// 模糊内容先扩写成大纲再生成脚本，精确内容直接生成脚本
func (o *Orchestrator) Run(ctx context.Context, req Request) (State, error) {
	if o.Stages == nil {
		return State{}, llm.ErrNotConfigured
	}

	voices, _ := ValidateRoster(req.Voices)
	lang := req.Language
	if lang == "" {
		lang = o.DefaultLanguage
	}
	st := State{
		Content:     req.Content,
		ContentType: req.ContentType,
		Voices:      voices,
		Language:    lang,
	}

	st, err := Classify(ctx, o.Stages.Analyzer, st)
	if err != nil {
		return st, &StageError{Stage: "classify", Err: err}
	}

	if !*st.IsPrecise {
		st, err = Elaborate(ctx, o.Stages.Writer, st)
		if err != nil {
			return st, &StageError{Stage: "elaborate", Err: err}
		}
	}

	st, err = Draft(ctx, o.Stages.Scripter, st)
	if err != nil {
		return st, &StageError{Stage: "draft", Err: err}
	}

	st, err = Normalize(ctx, o.Stages.Translator, st)
	if err != nil {
		return st, &StageError{Stage: "normalize", Err: err}
	}

	return st, nil
}

// Generate 按需产出输出片段。调用方停止消费后不再推进任何阶段。
// 成功路径：截断警告（如有）→持久化确认（如配置了Sink）→逐段正文。
// 失败路径：恰好一条诊断片段，且不落库
func (o *Orchestrator) Generate(ctx context.Context, req Request) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		voices, truncated := ValidateRoster(req.Voices)
		if truncated {
			logrus.Warnf("声音数量超过5个，已截取前5个。原数量：%d", len(req.Voices))
			if !yield(Segment{Kind: KindWarning, Text: "警告：声音数量超过5个限制，已自动截取前5个。\n"}) {
				return
			}
		}
		req.Voices = voices

		// 无模型降级：按空白切分原始输入逐词返回，附带一条诊断信息
		if o.Stages == nil {
			for _, tok := range strings.Fields(req.Content) {
				if !yield(Segment{Kind: KindContent, Text: tok + " "}) {
					return
				}
			}
			yield(Segment{Kind: KindDiagnostic, Text: "\n未配置LLM服务商，已按原文逐词返回。请设置ARK_API_KEY或OPENAI_API_KEY后重试。"})
			return
		}

		st, err := o.Run(ctx, req)
		if err != nil {
			logrus.Errorf("脚本生成失败: %v", err)
			yield(Segment{Kind: KindDiagnostic, Text: fmt.Sprintf("\n生成过程中出现错误: %v\n", err)})
			return
		}

		yielded := false
		if o.Sink != nil {
			summary := summarize(req.Content)
			id, err := o.Sink.SavePodcast(ctx, &model.Podcast{
				Content:     summary,
				VoiceIDs:    strings.Join(req.Voices, ","),
				ContentType: req.ContentType,
				Transcript:  st.FinalScript,
				Title:       summary,
			})
			if err != nil {
				logrus.Errorf("播客脚本保存失败: %v", err)
				yield(Segment{Kind: KindDiagnostic, Text: fmt.Sprintf("\n保存播客脚本失败: %v\n", err)})
				return
			}
			if !yield(Segment{Kind: KindSaved, Text: fmt.Sprintf("播客脚本已保存，ID: %d\n\n", id)}) {
				return
			}
			yielded = true
		}

		for _, paragraph := range strings.Split(st.FinalScript, "\n\n") {
			paragraph = strings.TrimSpace(paragraph)
			if paragraph == "" {
				continue
			}
			if !yield(Segment{Kind: KindContent, Text: paragraph + "\n\n"}) {
				return
			}
			yielded = true
		}

		// 模型返回空脚本时也给调用方一个明确交代
		if !yielded {
			yield(Segment{Kind: KindDiagnostic, Text: "\n生成结果为空，请调整输入后重试。\n"})
		}
	}
}

// summarize 取内容前100个字符作为摘要/标题
func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= 100 {
		return content
	}
	return string(runes[:100]) + "..."
}
