package pipeline

// MaxVoices 单次生成最多支持的音色数量
const MaxVoices = 5

// ValidateRoster 校验音色列表：超过上限时截取前MaxVoices个并返回truncated=true，
// 其余情况原样返回。该函数永不失败
func ValidateRoster(voices []string) ([]string, bool) {
	if len(voices) > MaxVoices {
		return voices[:MaxVoices], true
	}
	return voices, false
}
