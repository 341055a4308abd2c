package extract

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// duplicateWindow is the number of consecutive meaningful lines that must
// repeat before a block counts as duplicated.
const duplicateWindow = 4

// meaningfulLines drops blanks, lone braces, and comments so the
// duplicate window only sees content worth comparing.
func meaningfulLines(lines []line) []line {
	var out []line
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if trimmed == "" || trimmed == "{" || trimmed == "}" || trimmed == ")" || trimmed == "(" {
			continue
		}
		if isCommentLine(ln.text) {
			continue
		}
		out = append(out, line{num: ln.num, text: trimmed})
	}
	return out
}

// blockWindows hashes each sliding window of meaningful lines, keyed by
// the window's first line number.
func blockWindows(lines []line) map[int]string {
	meaningful := meaningfulLines(lines)
	windows := make(map[int]string)
	for i := 0; i+duplicateWindow <= len(meaningful); i++ {
		texts := make([]string, duplicateWindow)
		for j := 0; j < duplicateWindow; j++ {
			texts[j] = meaningful[i+j].text
		}
		windows[meaningful[i].num] = hashBlock(texts)
	}
	return windows
}

// duplicateLineNums reports where a block repeats within one unit. Only
// the later occurrences are returned; the first one is the original.
func duplicateLineNums(lines []line) []int {
	windows := blockWindows(lines)
	nums := make([]int, 0, len(windows))
	for num := range windows {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	seen := make(map[string]int)
	var dups []int
	for _, num := range nums {
		hash := windows[num]
		if first, ok := seen[hash]; ok {
			// Overlapping windows repeat the same discovery; keep blocks
			// at least a window apart.
			if num-first >= duplicateWindow {
				dups = append(dups, num)
				seen[hash] = num
			}
			continue
		}
		seen[hash] = num
	}
	return dups
}

func duplicateBlocks(path string, lines []line) []string {
	nums := duplicateLineNums(lines)
	refs := make([]string, 0, len(nums))
	for _, num := range nums {
		refs = append(refs, ref(path, num))
	}
	return refs
}

func hashBlock(texts []string) string {
	h := sha256.New()
	for _, t := range texts {
		h.Write([]byte(t))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// maxBraceDepth tracks nesting over contiguous source. Braces inside
// string literals skew it slightly; the rule thresholds absorb that.
func maxBraceDepth(lines []line) int {
	depth, deepest := 0, 0
	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		for _, r := range ln.text {
			switch r {
			case '{':
				depth++
				if depth > deepest {
					deepest = depth
				}
			case '}':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return deepest
}

// maxLoopNesting counts loops stacked inside loops using indentation as
// the scope signal.
func maxLoopNesting(lines []line) int {
	var stack []int
	deepest := 0
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if trimmed == "" || isCommentLine(ln.text) {
			continue
		}
		indent := len(ln.text) - len(strings.TrimLeft(ln.text, " \t"))
		for len(stack) > 0 && indent <= stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
		}
		if loopPattern.MatchString(ln.text) {
			stack = append(stack, indent)
			if len(stack) > deepest {
				deepest = len(stack)
			}
		}
	}
	return deepest
}

// countProps measures the widest Props declaration in the unit.
func countProps(lines []line) int {
	widest := 0
	inBlock, started := false, false
	depth, count := 0, 0

	for _, ln := range lines {
		if !inBlock {
			if !propsBlockPattern.MatchString(ln.text) {
				continue
			}
			inBlock, started, depth, count = true, false, 0, 0
		}
		opens := strings.Count(ln.text, "{")
		closes := strings.Count(ln.text, "}")
		if opens > 0 {
			started = true
		}
		depth += opens - closes
		if started && !propsBlockPattern.MatchString(ln.text) && propsMemberPattern.MatchString(ln.text) {
			count++
		}
		if started && depth <= 0 {
			inBlock = false
			if count > widest {
				widest = count
			}
		}
	}
	return widest
}
