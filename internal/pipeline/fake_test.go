package pipeline

import (
	"context"
	"strings"
)

// fakeCompleter 按脚本返回固定响应，并记录收到的指令
type fakeCompleter struct {
	resp  string
	err   error
	fn    func(system, user string) (string, error)
	calls []completerCall
}

type completerCall struct {
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls = append(f.calls, completerCall{system: system, user: user})
	if f.fn != nil {
		return f.fn(system, user)
	}
	return f.resp, f.err
}

// echoTranslator 模拟目标语言已匹配的翻译器：原样返回用户消息中的脚本部分
func echoTranslator() *fakeCompleter {
	return &fakeCompleter{fn: func(_, user string) (string, error) {
		_, script, found := strings.Cut(user, "脚本：\n")
		if !found {
			return user, nil
		}
		return script, nil
	}}
}
