package extract

import "regexp"

func compilePatterns(patterns ...string) []*regexp.Regexp {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Quality patterns.
var (
	todoPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|HACK|XXX|TEMP)\b`)

	// Lines that look like disabled code, not prose comments.
	commentedCodePatterns = compilePatterns(
		`^\s*//\s*(?:function |const |let |var |if |for |while |return |import |export |class )`,
		`^\s*//\s*\w+\s*[({=]`,
		`^\s*\{?/\*.*\b(?:function|return|const|import)\b.*\*/\}?`,
	)

	consolePattern = regexp.MustCompile(`\bconsole\.(?:log|debug|trace)\s*\(`)

	magicNumberPattern = regexp.MustCompile(`[=<>+\-*/(,?]\s*\d{2,}(?:\.\d+)?\b`)
	constDeclPattern   = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|enum|readonly)\b|^\s*[A-Z0-9_]+\s*[:=]`)

	declPattern      = regexp.MustCompile(`\b(?:const|let|var|function)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	snakeCasePattern = regexp.MustCompile(`^[a-z]+(?:_[a-z0-9]+)+$`)

	loopPattern = regexp.MustCompile(`\b(?:for|while)\s*\(|\.(?:forEach|map|flatMap)\s*\(`)
)

// Type safety patterns.
var (
	anyTypePatterns = compilePatterns(
		`:\s*any\b`,
		`<any>`,
		`\bas\s+any\b`,
		`\bany\[\]`,
	)

	missingReturnTypePattern = regexp.MustCompile(`^\s*export\s+(?:async\s+)?function\s+\w+\s*\([^)]*\)\s*\{`)
	tsSuppressPattern        = regexp.MustCompile(`@ts-(?:ignore|expect-error|nocheck)\b`)
	nonNullPattern           = regexp.MustCompile(`[\w)\]]!(?:\.|\[|\)|,|;)`)
)

// Architecture patterns.
var (
	importPattern      = regexp.MustCompile(`^\s*import\b|\brequire\s*\(`)
	deepImportPattern  = regexp.MustCompile(`from\s+['"](?:\.\./){3,}`)
	relImportPattern   = regexp.MustCompile(`from\s+['"](\.{1,2}/[^'"]+)['"]`)
	uiPathPattern      = regexp.MustCompile(`/(?:components|pages|views|ui)/`)
	dataPathPattern    = regexp.MustCompile(`['"][^'"]*/(?:db|database|repositories|dao|persistence)/[^'"]*['"]`)
	fetchPattern       = regexp.MustCompile(`\bfetch\s*\(|\baxios\b`)
	jsxElementPattern  = regexp.MustCompile(`<(?:[A-Z][A-Za-z0-9]*|div|span|button|input|img|ul|li|form|section|header|footer|main|nav)[\s/>]`)
	propsBlockPattern  = regexp.MustCompile(`(?:interface|type)\s+\w*Props\b`)
	propsMemberPattern = regexp.MustCompile(`^\s*(?:readonly\s+)?\w+\??\s*:`)
)

// Performance patterns.
var (
	wholeLibraryPattern = regexp.MustCompile(`import\s+(?:\*\s+as\s+)?\w+\s+from\s+['"](?:lodash|moment|rxjs|underscore|ramda)['"]`)
	blockingPatterns    = compilePatterns(
		`\b\w+Sync\s*\(`,
		`\balert\s*\(`,
		`\bconfirm\s*\(`,
		`\bprompt\s*\(`,
	)
)

// Accessibility patterns. Negative attribute checks happen in code because
// RE2 has no lookahead.
var (
	imgTagPattern       = regexp.MustCompile(`<img\b`)
	clickHandlerPattern = regexp.MustCompile(`<(?:div|span|li|td|section)\b[^>]*(?:onClick|@click|\(click\))=`)
	keyboardAttrPattern = regexp.MustCompile(`onKey(?:Down|Up|Press)|@keydown|@keyup|\(keydown\)|\brole=`)
	inputTagPattern     = regexp.MustCompile(`<input\b`)
	inputLabelAttrs     = regexp.MustCompile(`aria-label|aria-labelledby|\bid=`)
	positiveTabIndex    = regexp.MustCompile(`tab[iI]ndex\s*=\s*(?:\{\s*)?["']?[1-9]`)
	hiddenInputPattern  = regexp.MustCompile(`type=["']hidden["']`)
)

// Security patterns, grouped the way the rules consume them.
var (
	domSinkPatterns = compilePatterns(
		`\.innerHTML\s*=`,
		`\.outerHTML\s*=`,
		`document\.write\s*\(`,
		`insertAdjacentHTML\s*\(`,
		`dangerouslySetInnerHTML`,
		`v-html=`,
		`\[innerHTML\]`,
	)

	userInputPatterns = compilePatterns(
		`location\.(?:search|hash|href)`,
		`URLSearchParams|useSearchParams|searchParams`,
		`\$route\.query|\broute\.params`,
		`req\.(?:query|params|body)`,
	)

	secretPatterns = compilePatterns(
		`(?i)(?:api[_-]?key|secret|password|passwd|token)\s*[:=]\s*['"][^'"]{8,}['"]`,
		`AKIA[0-9A-Z]{16}`,
		`-----BEGIN (?:RSA |EC )?PRIVATE KEY-----`,
	)

	javascriptURLPattern = regexp.MustCompile(`(?:href|src)\s*=\s*["']javascript:`)
	targetBlankPattern   = regexp.MustCompile(`target=["']_blank["']`)
	noopenerPattern      = regexp.MustCompile(`rel=["'][^"']*noopener`)

	evalPatterns = compilePatterns(
		`\beval\s*\(`,
		`new\s+Function\s*\(`,
		`set(?:Timeout|Interval)\s*\(\s*["']`,
	)
)

// Testing patterns.
var (
	skippedTestPattern = regexp.MustCompile(`\b(?:it|test|describe)\.skip\s*\(|\bx(?:it|describe)\s*\(`)
	focusedTestPattern = regexp.MustCompile(`\b(?:it|test|describe)\.only\s*\(|\bf(?:it|describe)\s*\(`)
	testCasePattern    = regexp.MustCompile(`\b(?:it|test)\s*\(\s*['"` + "`" + `]`)
	assertionPattern   = regexp.MustCompile(`\bexpect\s*\(|\bassert\.\w+\s*\(|\.should\.`)
	snapshotPattern    = regexp.MustCompile(`toMatch(?:Inline)?Snapshot\s*\(`)
)

// Styling patterns.
var (
	inlineStylePatterns = compilePatterns(
		`style=\{\{`,
		`\sstyle="`,
	)

	importantPattern = regexp.MustCompile(`!important\b`)
	hexColorPattern  = regexp.MustCompile(`#[0-9a-fA-F]{6}\b|#[0-9a-fA-F]{3}\b`)
	stylePropLine    = regexp.MustCompile(`(?:color|background|border|margin|padding|font)`)
)

// Framework detection and framework-specific patterns.
var (
	reactImportPattern   = regexp.MustCompile(`from\s+['"]react['"]|require\s*\(\s*['"]react['"]`)
	vueImportPattern     = regexp.MustCompile(`from\s+['"]vue['"]|<template>`)
	angularImportPattern = regexp.MustCompile(`from\s+['"]@angular/|@Component\s*\(`)

	useEffectPattern   = regexp.MustCompile(`useEffect\s*\(`)
	dangerousHTMLAttr  = regexp.MustCompile(`dangerouslySetInnerHTML`)
	indexKeyPattern    = regexp.MustCompile(`key=\{\s*(?:i|idx|index)\s*\}`)
	stateMutatePattern = regexp.MustCompile(`this\.state\.\w+\s*=[^=]`)
	styleObjectPattern = regexp.MustCompile(`style=\{\{`)

	vHTMLPattern       = regexp.MustCompile(`v-html=`)
	vForPattern        = regexp.MustCompile(`v-for=`)
	vueKeyAttr         = regexp.MustCompile(`:key=|v-bind:key=`)
	propMutatePattern  = regexp.MustCompile(`(?:this\.\$props|props)\.\w+\s*=[^=]`)
	staticStylePattern = regexp.MustCompile(`[^:]style="`)

	bypassSanitizerPattern = regexp.MustCompile(`bypassSecurityTrust\w*`)
	templateCallPattern    = regexp.MustCompile(`\{\{\s*\w+\([^)]*\)\s*\}\}`)
	componentDecorator     = regexp.MustCompile(`@Component\s*\(`)
	onPushPattern          = regexp.MustCompile(`ChangeDetectionStrategy\.OnPush`)
)
