package header

// Vocabulary maps header keywords to their scoring weight. Matching is by
// substring: ASCII keywords match case-insensitively, CJK keywords match
// exactly (case folding is a no-op for them).
type Vocabulary map[string]float64

// DefaultVocabulary holds the domain terms expected in a cost-sheet header.
// Weights favor the columns that identify line items and money amounts over
// generic bookkeeping columns.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"项目":  3,
		"名称":  3,
		"单价":  3,
		"合价":  3,
		"工程量": 3,
		"单位":  2,
		"序号":  2,
		"功能区": 1,
		"内容":  1,
		"规则":  1,
		"方式":  1,
		"备注":  1,
	}
}
