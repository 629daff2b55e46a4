package pipeline

import (
	"context"
	"fmt"
	"strings"

	"podcastgen/internal/llm"
)

// Classify 判断内容是精确脚本还是模糊描述。模型响应中包含"precise"
// （不区分大小写）视为精确，其余一律按模糊处理
func Classify(ctx context.Context, c llm.Completer, st State) (State, error) {
	resp, err := c.Complete(ctx, classifyInstruction, fmt.Sprintf("请分析以下内容：\n%s", st.Content))
	if err != nil {
		return st, err
	}
	isPrecise := strings.Contains(strings.ToLower(resp), "precise")
	st = st.withResponse(resp)
	st.IsPrecise = &isPrecise
	return st, nil
}

// Elaborate 将模糊的主题描述扩展为5分钟朗读大纲，仅在模糊分支调用
func Elaborate(ctx context.Context, c llm.Completer, st State) (State, error) {
	resp, err := c.Complete(ctx, elaborateInstruction(st.ContentType, st.Voices),
		fmt.Sprintf("主题描述：%s", st.Content))
	if err != nil {
		return st, err
	}
	st = st.withResponse(resp)
	st.Elaborated = resp
	return st, nil
}

// Draft 将大纲（或原始精确内容）转换为最终朗读脚本。
// 已生成大纲时优先使用大纲
func Draft(ctx context.Context, c llm.Completer, st State) (State, error) {
	source := st.Elaborated
	if source == "" {
		source = st.Content
	}
	voicesStr := "单人朗读"
	if len(st.Voices) > 0 {
		voicesStr = strings.Join(st.Voices, "、")
	}
	resp, err := c.Complete(ctx, draftInstruction(st.Voices),
		fmt.Sprintf("参与者：%s\n\n请根据以下内容生成脚本：\n\n%s", voicesStr, source))
	if err != nil {
		return st, err
	}
	st = st.withResponse(resp)
	st.Draft = resp
	return st, nil
}

// Normalize 检测脚本语言并在与目标语言不一致时翻译，保持格式与发言人姓名不变。
// 无论上游走哪个分支都会执行
func Normalize(ctx context.Context, c llm.Completer, st State) (State, error) {
	resp, err := c.Complete(ctx, normalizeInstruction(st.Language),
		fmt.Sprintf("目标语言：%s\n\n脚本：\n%s", st.Language, st.Draft))
	if err != nil {
		return st, err
	}
	st = st.withResponse(resp)
	st.FinalScript = resp
	return st, nil
}
