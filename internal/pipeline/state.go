package pipeline

import "fmt"

// Request 一次脚本生成请求，进入流水线后不再修改
type Request struct {
	Content     string   `json:"content"`
	ContentType string   `json:"contentType"`
	Voices      []string `json:"voices"`
	Language    string   `json:"language"`
}

// State 流水线状态，每个阶段基于上一个状态返回新值，只填充自己负责的字段
type State struct {
	Content     string
	ContentType string
	Voices      []string
	Language    string

	IsPrecise   *bool    // 分类器填充
	Elaborated  string   // 仅模糊分支填充
	Draft       string   // 脚本生成器填充
	FinalScript string   // 语言归一化填充
	Responses   []string // 各阶段模型原始响应，仅用于追踪
}

// withResponse 返回追加了一条模型响应的副本，不共享底层数组
func (s State) withResponse(resp string) State {
	out := make([]string, 0, len(s.Responses)+1)
	out = append(out, s.Responses...)
	out = append(out, resp)
	s.Responses = out
	return s
}

// SegmentKind 输出片段类型
type SegmentKind string

const (
	KindContent    SegmentKind = "content"    // 正文段落
	KindWarning    SegmentKind = "warning"    // 纠正性警告（如音色截断）
	KindSaved      SegmentKind = "saved"      // 持久化成功确认
	KindDiagnostic SegmentKind = "diagnostic" // 错误或降级诊断信息
)

// Segment 流式输出的最小单元
type Segment struct {
	Kind SegmentKind
	Text string
}

// StageError 标记出错的流水线阶段
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
