package resolver

import "strings"

// monthWords rewrites CJK calendar-month words to two-digit month tokens.
// The 年 anchor keeps the single-character months from matching inside the
// double-character ones (年一月 never occurs inside 年十一月).
var monthWords = []struct{ word, numeric string }{
	{"一月", "01"}, {"二月", "02"}, {"三月", "03"}, {"四月", "04"},
	{"五月", "05"}, {"六月", "06"}, {"七月", "07"}, {"八月", "08"},
	{"九月", "09"}, {"十月", "10"}, {"十一月", "11"}, {"十二月", "12"},
}

var quarterWords = []struct{ word, canonical string }{
	{"季1", "Q1"}, {"季2", "Q2"}, {"季3", "Q3"}, {"季4", "Q4"},
	{"q1", "Q1"}, {"q2", "Q2"}, {"q3", "Q3"}, {"q4", "Q4"},
}

// Normalize canonicalizes calendar-month and quarter spellings so the
// temporal grammars only ever see 年NN月 and QN tokens. The substitution sets
// are disjoint, so application order does not matter.
func Normalize(text string) string {
	for _, m := range monthWords {
		text = strings.ReplaceAll(text, "年"+m.word, "年"+m.numeric+"月")
	}
	for _, q := range quarterWords {
		text = strings.ReplaceAll(text, q.word, q.canonical)
	}
	return text
}
