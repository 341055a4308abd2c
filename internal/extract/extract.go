// Package extract derives fact sets from frontend source.
//
// Extraction is line-oriented pattern matching, the same reading a
// reviewer does when skimming a change. Nothing here builds an AST; the
// facts are honest about being heuristics and the rules treat them that
// way.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/revue-dev/revue/internal/fact"
)

// line is one numbered source line. Diff extraction produces sparse line
// sequences, so the number travels with the text.
type line struct {
	num  int
	text string
}

// FromSource extracts the facts for one source unit.
func FromSource(path, src string) *fact.Set {
	lines := splitLines(src)
	return buildSource(path, lines, len(lines)).Build()
}

// FromFile reads path and extracts its facts.
func FromFile(path string) (*fact.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromSource(path, string(data)), nil
}

// buildSource runs every collector over the lines. totalLines is zero for
// sparse input, which disables the facts that only make sense over a
// contiguous file.
func buildSource(path string, lines []line, totalLines int) *fact.Builder {
	b := fact.NewBuilder()
	b.String(fact.FilePath, path)

	lang := detectLanguage(path)
	if lang != "" {
		b.String(fact.Language, lang)
	}
	fw := detectFramework(path, lines)
	if fw != "" {
		b.String(fact.Framework, fw)
	}
	if totalLines > 0 {
		b.Int(fact.FileLines, totalLines)
	}
	if isTestPath(path) {
		b.Bool(fact.IsTestFile, true)
	}

	collectQuality(b, path, lines, totalLines > 0)
	collectTypeSafety(b, path, lines, lang)
	collectArchitecture(b, path, lines, totalLines > 0)
	collectPerformance(b, path, lines, totalLines > 0)
	collectAccessibility(b, path, lines)
	collectSecurity(b, path, lines)
	collectTesting(b, path, lines)
	collectStyling(b, path, lines, lang)
	collectFramework(b, path, lines, fw)
	return b
}

func splitLines(src string) []line {
	raw := strings.Split(src, "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	lines := make([]line, len(raw))
	for i, text := range raw {
		lines[i] = line{num: i + 1, text: strings.TrimSuffix(text, "\r")}
	}
	return lines
}

func ref(path string, num int) string {
	return fmt.Sprintf("%s:%d", path, num)
}

func detectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	case ".vue":
		return "vue"
	case ".css", ".scss", ".less":
		return "css"
	case ".html", ".htm":
		return "html"
	}
	return ""
}

func detectFramework(path string, lines []line) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".vue" {
		return fact.FrameworkVue
	}
	for _, ln := range lines {
		switch {
		case angularImportPattern.MatchString(ln.text):
			return fact.FrameworkAngular
		case reactImportPattern.MatchString(ln.text):
			return fact.FrameworkReact
		case vueImportPattern.MatchString(ln.text):
			return fact.FrameworkVue
		}
	}
	if ext == ".tsx" || ext == ".jsx" {
		return fact.FrameworkReact
	}
	return ""
}

func isTestPath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.") ||
		strings.Contains(filepath.ToSlash(path), "__tests__/")
}

func isCommentLine(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "<!--")
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func collectQuality(b *fact.Builder, path string, lines []line, contiguous bool) {
	var todos, commented, consoles, magics []string
	shortNames := map[string]struct{}{}
	snakeNames := map[string]struct{}{}

	for _, ln := range lines {
		comment := isCommentLine(ln.text)
		if comment {
			if todoPattern.MatchString(ln.text) {
				todos = append(todos, ref(path, ln.num))
			}
			if matchAny(commentedCodePatterns, ln.text) {
				commented = append(commented, ref(path, ln.num))
			}
			continue
		}
		if consolePattern.MatchString(ln.text) {
			consoles = append(consoles, ref(path, ln.num))
		}
		if magicNumberPattern.MatchString(ln.text) && !constDeclPattern.MatchString(ln.text) && !hexColorPattern.MatchString(ln.text) {
			magics = append(magics, ref(path, ln.num))
		}
		loopLine := loopPattern.MatchString(ln.text)
		for _, m := range declPattern.FindAllStringSubmatch(ln.text, -1) {
			name := m[1]
			// Loop counters are idiomatic, not cryptic.
			if len(name) <= 2 && name != "id" && !loopLine {
				shortNames[name] = struct{}{}
			}
			if snakeCasePattern.MatchString(name) {
				snakeNames[name] = struct{}{}
			}
		}
	}

	if len(todos) > 0 {
		b.StringSeq(fact.TodoLines, todos...)
	}
	if len(commented) > 0 {
		b.StringSeq(fact.CommentedCodeLines, commented...)
	}
	if len(consoles) > 0 {
		b.StringSeq(fact.ConsoleLines, consoles...)
	}
	if len(magics) > 0 {
		b.StringSeq(fact.MagicNumberLines, magics...)
	}
	if len(shortNames) > 0 {
		b.StringSet(fact.ShortIdentifiers, setToSlice(shortNames)...)
	}
	if len(snakeNames) > 0 {
		b.StringSet(fact.SnakeCaseIdentifiers, setToSlice(snakeNames)...)
	}
	if dups := duplicateBlocks(path, lines); len(dups) > 0 {
		b.StringSeq(fact.DuplicateBlockLines, dups...)
	}
	if contiguous {
		if depth := maxBraceDepth(lines); depth > 0 {
			b.Int(fact.MaxNestingDepth, depth)
		}
	}
}

func collectTypeSafety(b *fact.Builder, path string, lines []line, lang string) {
	if lang != "typescript" && lang != "vue" {
		return
	}
	var anys, missing, suppress []string
	nonNull := 0

	for _, ln := range lines {
		if tsSuppressPattern.MatchString(ln.text) {
			suppress = append(suppress, ref(path, ln.num))
			continue
		}
		if isCommentLine(ln.text) {
			continue
		}
		if matchAny(anyTypePatterns, ln.text) {
			anys = append(anys, ref(path, ln.num))
		}
		if missingReturnTypePattern.MatchString(ln.text) {
			missing = append(missing, ref(path, ln.num))
		}
		nonNull += len(nonNullPattern.FindAllString(ln.text, -1))
	}

	if len(anys) > 0 {
		b.Bool(fact.UsesAnyType, true)
		b.StringSeq(fact.AnyTypeLines, anys...)
	}
	if len(missing) > 0 {
		b.StringSeq(fact.MissingReturnTypeLines, missing...)
	}
	if len(suppress) > 0 {
		b.StringSeq(fact.TSSuppressLines, suppress...)
	}
	if nonNull > 0 {
		b.Int(fact.NonNullAssertionCount, nonNull)
	}
}

func collectArchitecture(b *fact.Builder, path string, lines []line, contiguous bool) {
	imports := 0
	var deep, violations []string
	onUIPath := uiPathPattern.MatchString(filepath.ToSlash(path))
	sawFetch := false
	sawJSX := false

	ext := strings.ToLower(filepath.Ext(path))
	jsxCapable := ext == ".tsx" || ext == ".jsx" || ext == ".vue" || ext == ".js"

	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if importPattern.MatchString(ln.text) {
			imports++
			if deepImportPattern.MatchString(ln.text) {
				deep = append(deep, ref(path, ln.num))
			}
			if onUIPath && dataPathPattern.MatchString(ln.text) {
				violations = append(violations, ref(path, ln.num))
			}
		}
		if fetchPattern.MatchString(ln.text) {
			sawFetch = true
		}
		if jsxCapable && jsxElementPattern.MatchString(ln.text) {
			sawJSX = true
		}
	}

	if imports > 0 {
		b.Int(fact.ImportCount, imports)
	}
	if len(deep) > 0 {
		b.StringSeq(fact.DeepImportLines, deep...)
	}
	if len(violations) > 0 {
		b.StringSeq(fact.LayerViolationLines, violations...)
	}
	if sawFetch {
		b.Bool(fact.FetchInComponent, true)
	}
	if sawJSX {
		b.Bool(fact.HasJSX, true)
	}
	if contiguous {
		if props := countProps(lines); props > 0 {
			b.Int(fact.PropCount, props)
		}
	}
}

func collectPerformance(b *fact.Builder, path string, lines []line, contiguous bool) {
	var whole, blocking []string
	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if wholeLibraryPattern.MatchString(ln.text) {
			whole = append(whole, ref(path, ln.num))
		}
		if matchAny(blockingPatterns, ln.text) {
			blocking = append(blocking, ref(path, ln.num))
		}
	}
	if len(whole) > 0 {
		b.StringSeq(fact.WholeLibraryImportLines, whole...)
	}
	if len(blocking) > 0 {
		b.StringSeq(fact.BlockingCallLines, blocking...)
	}
	if contiguous {
		if depth := maxLoopNesting(lines); depth > 0 {
			b.Int(fact.MaxLoopNesting, depth)
		}
	}
}

func collectAccessibility(b *fact.Builder, path string, lines []line) {
	var imgs, clicks, inputs, tabs []string
	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if imgTagPattern.MatchString(ln.text) && !strings.Contains(ln.text, "alt=") {
			imgs = append(imgs, ref(path, ln.num))
		}
		if clickHandlerPattern.MatchString(ln.text) && !keyboardAttrPattern.MatchString(ln.text) {
			clicks = append(clicks, ref(path, ln.num))
		}
		if inputTagPattern.MatchString(ln.text) &&
			!inputLabelAttrs.MatchString(ln.text) &&
			!hiddenInputPattern.MatchString(ln.text) {
			inputs = append(inputs, ref(path, ln.num))
		}
		if positiveTabIndex.MatchString(ln.text) {
			tabs = append(tabs, ref(path, ln.num))
		}
	}
	if len(imgs) > 0 {
		b.StringSeq(fact.ImagesMissingAlt, imgs...)
	}
	if len(clicks) > 0 {
		b.StringSeq(fact.ClickWithoutKeyLines, clicks...)
	}
	if len(inputs) > 0 {
		b.StringSeq(fact.InputsMissingLabel, inputs...)
	}
	if len(tabs) > 0 {
		b.StringSeq(fact.PositiveTabIndexLines, tabs...)
	}
}

func collectSecurity(b *fact.Builder, path string, lines []line) {
	var sinks, secrets, jsURLs, blanks, evals []string
	sawUserInput := false

	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if matchAny(domSinkPatterns, ln.text) {
			sinks = append(sinks, ref(path, ln.num))
		}
		if matchAny(userInputPatterns, ln.text) {
			sawUserInput = true
		}
		if matchAny(secretPatterns, ln.text) {
			secrets = append(secrets, ref(path, ln.num))
		}
		if javascriptURLPattern.MatchString(ln.text) {
			jsURLs = append(jsURLs, ref(path, ln.num))
		}
		if targetBlankPattern.MatchString(ln.text) && !noopenerPattern.MatchString(ln.text) {
			blanks = append(blanks, ref(path, ln.num))
		}
		if matchAny(evalPatterns, ln.text) {
			evals = append(evals, ref(path, ln.num))
		}
	}

	if len(sinks) > 0 {
		b.StringSeq(fact.DOMSinkLines, sinks...)
		b.Bool(fact.SinkHasUserInput, sawUserInput)
	}
	if len(secrets) > 0 {
		b.StringSeq(fact.SecretLiteralLines, secrets...)
	}
	if len(jsURLs) > 0 {
		b.StringSeq(fact.JavascriptURLLines, jsURLs...)
	}
	if len(blanks) > 0 {
		b.StringSeq(fact.TargetBlankLines, blanks...)
	}
	if len(evals) > 0 {
		b.StringSeq(fact.EvalLines, evals...)
	}
}

func collectTesting(b *fact.Builder, path string, lines []line) {
	if !isTestPath(path) {
		return
	}
	var skipped, focused []string
	tests, asserts, snapshots := 0, 0, 0

	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if skippedTestPattern.MatchString(ln.text) {
			skipped = append(skipped, ref(path, ln.num))
		}
		if focusedTestPattern.MatchString(ln.text) {
			focused = append(focused, ref(path, ln.num))
		}
		tests += len(testCasePattern.FindAllString(ln.text, -1))
		asserts += len(assertionPattern.FindAllString(ln.text, -1))
		snapshots += len(snapshotPattern.FindAllString(ln.text, -1))
	}

	if len(skipped) > 0 {
		b.StringSeq(fact.SkippedTestLines, skipped...)
	}
	if len(focused) > 0 {
		b.StringSeq(fact.FocusedTestLines, focused...)
	}
	b.Int(fact.TestCount, tests)
	b.Int(fact.AssertionCount, asserts)
	if snapshots > 0 {
		b.Int(fact.SnapshotTestCount, snapshots)
	}
}

func collectStyling(b *fact.Builder, path string, lines []line, lang string) {
	var inline, important, hexes []string
	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if matchAny(inlineStylePatterns, ln.text) {
			inline = append(inline, ref(path, ln.num))
		}
		if importantPattern.MatchString(ln.text) {
			important = append(important, ref(path, ln.num))
		}
		if hexColorPattern.MatchString(ln.text) && (lang == "css" || stylePropLine.MatchString(ln.text)) {
			hexes = append(hexes, ref(path, ln.num))
		}
	}
	if len(inline) > 0 {
		b.StringSeq(fact.InlineStyleLines, inline...)
	}
	if len(important) > 0 {
		b.StringSeq(fact.ImportantLines, important...)
	}
	if len(hexes) > 0 {
		b.StringSeq(fact.HexColorLines, hexes...)
	}
}

func collectFramework(b *fact.Builder, path string, lines []line, fw string) {
	switch fw {
	case fact.FrameworkReact:
		collectReact(b, path, lines)
	case fact.FrameworkVue:
		collectVue(b, path, lines)
	case fact.FrameworkAngular:
		collectAngular(b, path, lines)
	}
}

func collectReact(b *fact.Builder, path string, lines []line) {
	var effects, dangerous, indexKeys, mutations, styleProps []string
	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		// Single-line heuristic: an effect opened without a dependency
		// bracket anywhere on the line.
		if useEffectPattern.MatchString(ln.text) && !strings.Contains(ln.text, "[") {
			effects = append(effects, ref(path, ln.num))
		}
		if dangerousHTMLAttr.MatchString(ln.text) {
			dangerous = append(dangerous, ref(path, ln.num))
		}
		if indexKeyPattern.MatchString(ln.text) {
			indexKeys = append(indexKeys, ref(path, ln.num))
		}
		if stateMutatePattern.MatchString(ln.text) {
			mutations = append(mutations, ref(path, ln.num))
		}
		if styleObjectPattern.MatchString(ln.text) {
			styleProps = append(styleProps, ref(path, ln.num))
		}
	}
	if len(effects) > 0 {
		b.StringSeq(fact.EffectsMissingDepsLines, effects...)
	}
	if len(dangerous) > 0 {
		b.StringSeq(fact.DangerousHTMLLines, dangerous...)
	}
	if len(indexKeys) > 0 {
		b.StringSeq(fact.IndexKeyLines, indexKeys...)
	}
	if len(mutations) > 0 {
		b.StringSeq(fact.StateMutationLines, mutations...)
	}
	if len(styleProps) > 0 {
		b.StringSeq(fact.ReactStylePropLines, styleProps...)
	}
}

func collectVue(b *fact.Builder, path string, lines []line) {
	var vHTMLs, vFors, mutations, statics []string
	for _, ln := range lines {
		if isCommentLine(ln.text) {
			continue
		}
		if vHTMLPattern.MatchString(ln.text) {
			vHTMLs = append(vHTMLs, ref(path, ln.num))
		}
		if vForPattern.MatchString(ln.text) && !vueKeyAttr.MatchString(ln.text) {
			vFors = append(vFors, ref(path, ln.num))
		}
		if propMutatePattern.MatchString(ln.text) {
			mutations = append(mutations, ref(path, ln.num))
		}
		if staticStylePattern.MatchString(ln.text) {
			statics = append(statics, ref(path, ln.num))
		}
	}
	if len(vHTMLs) > 0 {
		b.StringSeq(fact.VHTMLLines, vHTMLs...)
	}
	if len(vFors) > 0 {
		b.StringSeq(fact.VForNoKeyLines, vFors...)
	}
	if len(mutations) > 0 {
		b.StringSeq(fact.PropMutationLines, mutations...)
	}
	if len(statics) > 0 {
		b.StringSeq(fact.StaticStyleAttrLines, statics...)
	}
}

func collectAngular(b *fact.Builder, path string, lines []line) {
	var bypasses, calls []string
	isComponent := false
	onPush := false
	for _, ln := range lines {
		if bypassSanitizerPattern.MatchString(ln.text) {
			bypasses = append(bypasses, ref(path, ln.num))
		}
		if templateCallPattern.MatchString(ln.text) {
			calls = append(calls, ref(path, ln.num))
		}
		if componentDecorator.MatchString(ln.text) {
			isComponent = true
		}
		if onPushPattern.MatchString(ln.text) {
			onPush = true
		}
	}
	if len(bypasses) > 0 {
		b.StringSeq(fact.BypassSanitizerLines, bypasses...)
	}
	if len(calls) > 0 {
		b.StringSeq(fact.TemplateFunctionCallLines, calls...)
	}
	if isComponent {
		b.Bool(fact.DefaultChangeDetection, !onPush)
	}
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	return out
}
