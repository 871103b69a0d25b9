package estimate

import "github.com/chewing/gochewing/internal/zhuyin"

// breakWords lists single-character phrases common enough, and forming
// enough unrelated multi-character words, that committing one should
// never be glued into a longer auto-learned run.
var breakWords = map[string]bool{
	"是": true, "的": true, "了": true, "不": true, "也": true, "而": true,
	"你": true, "我": true, "他": true, "與": true, "它": true, "她": true,
	"其": true, "就": true, "和": true, "或": true, "們": true, "性": true,
	"員": true, "子": true, "上": true, "下": true, "中": true, "內": true,
	"外": true, "化": true, "者": true, "家": true, "兒": true, "年": true,
	"月": true, "日": true, "時": true, "分": true, "秒": true, "街": true,
	"路": true, "村": true, "在": true,
}

// IsBreakWord reports whether text should never be folded into a longer
// auto-learned phrase.
func IsBreakWord(text string) bool { return breakWords[text] }

// Committed is one phrase as it leaves the composition buffer, in commit
// order. Syllables is nil for passthrough char intervals, which can
// never be learned into the dictionary.
type Committed struct {
	Text      string
	Syllables []zhuyin.Syllable
}

// Run is one auto-learn unit, carrying the syllables needed to key the
// dictionary alongside the text to learn for them.
type Run struct {
	Text      string
	Syllables []zhuyin.Syllable
}

// AutoLearnRuns splits a sequence of committed phrases into the runs that
// should be learned as a single phrase: consecutive single-syllable,
// non-break-word commits are glued together; a break word or a
// multi-syllable phrase ends the pending run, and a multi-syllable phrase
// is also a run of its own. A break word is never a run itself.
func AutoLearnRuns(commits []Committed) []Run {
	var runs []Run
	var pending Run
	flush := func() {
		if pending.Text != "" {
			runs = append(runs, pending)
			pending = Run{}
		}
	}
	for _, c := range commits {
		if c.Syllables == nil {
			// Passthrough char interval: breaks a run but can't itself
			// be learned, so it never becomes a run of its own.
			flush()
			continue
		}
		if len(c.Syllables) != 1 || IsBreakWord(c.Text) {
			flush()
			if len(c.Syllables) != 1 {
				runs = append(runs, Run{Text: c.Text, Syllables: c.Syllables})
			}
			continue
		}
		pending.Text += c.Text
		pending.Syllables = append(pending.Syllables, c.Syllables...)
	}
	flush()
	return runs
}
