package pipeline

import (
	"fmt"
	"strings"
)

const classifyInstruction = `你是一个专业的内容分析专家。请判断给定的内容是精确的播客脚本还是模糊的主题描述。

精确脚本的特征：
- 包含具体的朗读文本内容
- 有明确的发言人和对话（如果是多人）
- 内容详细完整，可以直接朗读
- 有具体的播客结构和内容

模糊描述的特征：
- 只是主题、概念或想法
- 缺乏具体的文本内容
- 需要进一步展开成完整的朗读稿
- 只是大纲或提纲

请仔细分析内容，只回答 "precise" 或 "vague"，不要添加其他解释。`

// elaborateInstruction 按音色数量选择大纲生成指令
func elaborateInstruction(contentType string, voices []string) string {
	if contentType == "" {
		contentType = "通用"
	}

	var voiceInstruction string
	switch len(voices) {
	case 0:
		voiceInstruction = `生成单人朗读内容大纲（5分钟）：
- 单人朗读形式
- 直入主题，无需介绍
- 内容要简洁精炼`
	case 1:
		voiceInstruction = fmt.Sprintf(`生成单人朗读内容大纲（5分钟）：
- 朗读者：%s
- 直入主题，无需自我介绍
- 内容要有重点，简洁明了`, voices[0])
	default:
		voiceInstruction = fmt.Sprintf(`生成多人对话内容大纲（5分钟）：
- 参与者：%s
- 直接开始讨论，无需介绍环节
- 对话要简洁高效`, strings.Join(voices, "、"))
	}

	return fmt.Sprintf(`你是一个专业的内容策划师。根据给定的主题描述，生成5分钟朗读内容的详细大纲。

内容类型：%s
%s

请生成包含以下要素的内容大纲：

1. 核心内容（4-4.5分钟）
   - 2-3个核心要点
   - 每个要点要精炼有力
   - 包含具体例子或案例
   - 提供实用建议

2. 总结（30秒-1分钟）
   - 快速总结核心观点
   - 简短的行动建议

重要要求：
- 不要包含任何节目介绍、欢迎词、自我介绍
- 不要创建节目名称或播客信息
- 直接进入主题内容
- 内容要高度浓缩，去除冗余信息
- 语言要简洁有力，节奏要快
- 总字数控制在800-1000字左右

直接从主题内容开始，无需任何开场白。`, contentType, voiceInstruction)
}

// draftInstruction 按音色数量选择脚本格式指令
func draftInstruction(voices []string) string {
	var scriptFormat string
	if len(voices) <= 1 {
		scriptFormat = `脚本格式（单人朗读，5分钟）：
直接输出朗读文本，无需标注发言人。

示例：
人工智能正在改变我们的工作方式。最明显的变化是自动化程度的提升...

这种变化带来三个关键影响。第一，重复性工作将被替代...

总结一下，面对AI时代，我们需要做好三件事...

要求：
- 直接从主题内容开始
- 不要任何开场白、问候语、自我介绍
- 不要创建节目名称
- 语言简洁有力，避免废话
- 总字数800-1000字`
	} else {
		second := "嘉宾"
		if len(voices) > 1 {
			second = voices[1]
		}
		scriptFormat = fmt.Sprintf(`脚本格式（多人对话，5分钟）：
发言人：说话内容

示例：
%s：人工智能对教育的影响主要体现在三个方面...
%s：我觉得最重要的是个性化学习...
%s：你能具体说说吗？
%s：比如AI可以根据学生的学习进度...

要求：
- 严格使用提供的人名：%s
- 直接开始讨论主题，无需介绍环节
- 不要任何开场白、问候语
- 对话要快节奏，避免冗长
- 总字数800-1000字`, voices[0], second, voices[0], second, strings.Join(voices, "、"))
	}

	return fmt.Sprintf(`你是一个专业的脚本编写师。请将给定的内容大纲转换为5分钟的纯文本朗读脚本。

%s

脚本编写要求：

1. 内容要求
   - 直接从主题内容开始，无任何开场
   - 不要包含：欢迎词、问候语、自我介绍、节目介绍
   - 不要创建：节目名称、播客信息、主持人介绍
   - 每句话都要有价值，去除冗余
   - 重点突出，逻辑清晰

2. 格式要求
   - 输出纯文本格式，不使用markdown语法
   - 不要使用加粗、斜体等格式
   - 单人：直接输出朗读文本
   - 多人：严格按照"发言人：说话内容"格式
   - 发言人姓名必须与voices列表完全一致

3. 时长控制
   - 严格控制在5分钟内（800-1000字）
   - 按正常语速150-200字/分钟计算

4. 语言要求
   - 使用口语化表达，适合朗读
   - 语言简洁有力，节奏明快
   - 避免书面语和复杂句式

请生成完整的朗读脚本，直接从主题内容开始。`, scriptFormat)
}

// normalizeInstruction 语言检测与翻译指令
func normalizeInstruction(targetLanguage string) string {
	return fmt.Sprintf(`你是一个专业的语言检测和翻译专家。请执行以下任务：

1. 语言检测：检测给定脚本的主要语言
2. 语言匹配：判断是否与目标语言"%s"一致
3. 翻译处理：如果不一致，请进行专业翻译

翻译要求（如需要）：
- 保持脚本的格式：
  * 单人脚本：保持纯文本格式
  * 多人脚本：保持"发言人：内容"格式
- 保持发言人姓名不变
- 确保翻译后的内容自然流畅，适合朗读
- 保持5分钟的时长要求（800-1000字）
- 使用目标语言的自然表达方式
- 输出纯文本格式，不使用任何markdown语法

如果语言一致，请直接返回原脚本。
如果需要翻译，请返回翻译后的完整脚本。

请只返回最终的脚本内容，不要添加任何解释或说明。`, targetLanguage)
}
