package fact

import "sort"

// VocabularyVersion identifies the fact vocabulary a report was produced
// against. Bump it when fact names or kinds change meaning.
const VocabularyVersion = "1"

// Framework values carried by the Framework fact.
const (
	FrameworkReact   = "react"
	FrameworkVue     = "vue"
	FrameworkAngular = "angular"
)

// Fact names shared between extractors and rules. Line-bearing facts are
// ordered sequences of "path:line" references.
const (
	// Unit facts.
	FilePath    = "filePath"
	Language    = "language"
	Framework   = "framework"
	FileLines   = "fileLines"
	IsTestFile  = "isTestFile"
	HasTestFile = "hasTestFile"

	// Quality facts.
	TodoLines            = "todoLines"
	CommentedCodeLines   = "commentedCodeLines"
	ConsoleLines         = "consoleLines"
	MagicNumberLines     = "magicNumberLines"
	DuplicateBlockLines  = "duplicateBlockLines"
	MaxNestingDepth      = "maxNestingDepth"
	ShortIdentifiers     = "shortIdentifiers"
	SnakeCaseIdentifiers = "snakeCaseIdentifiers"

	// Type safety facts.
	UsesAnyType            = "usesAnyType"
	AnyTypeLines           = "anyTypeLines"
	MissingReturnTypeLines = "missingReturnTypeLines"
	TSSuppressLines        = "tsSuppressLines"
	NonNullAssertionCount  = "nonNullAssertionCount"

	// Architecture facts.
	ImportCount          = "importCount"
	DeepImportLines      = "deepImportLines"
	LayerViolationLines  = "layerViolationLines"
	CircularImportChains = "circularImportChains"
	PropCount            = "propCount"
	FetchInComponent     = "fetchInComponent"
	HasJSX               = "hasJSX"

	// Performance facts.
	WholeLibraryImportLines = "wholeLibraryImportLines"
	MaxLoopNesting          = "maxLoopNesting"
	BlockingCallLines       = "blockingCallLines"

	// Accessibility facts.
	ImagesMissingAlt      = "imagesMissingAlt"
	ClickWithoutKeyLines  = "clickWithoutKeyLines"
	InputsMissingLabel    = "inputsMissingLabel"
	PositiveTabIndexLines = "positiveTabIndexLines"

	// Security facts.
	DOMSinkLines       = "domSinkLines"
	SinkHasUserInput   = "sinkHasUserInput"
	SecretLiteralLines = "secretLiteralLines"
	JavascriptURLLines = "javascriptUrlLines"
	TargetBlankLines   = "targetBlankLines"
	EvalLines          = "evalLines"

	// Testing facts.
	SkippedTestLines  = "skippedTestLines"
	FocusedTestLines  = "focusedTestLines"
	TestCount         = "testCount"
	AssertionCount    = "assertionCount"
	SnapshotTestCount = "snapshotTestCount"

	// Styling facts.
	InlineStyleLines = "inlineStyleLines"
	ImportantLines   = "importantLines"
	HexColorLines    = "hexColorLines"

	// React facts.
	EffectsMissingDepsLines = "effectsMissingDepsLines"
	DangerousHTMLLines      = "dangerousHtmlLines"
	IndexKeyLines           = "indexKeyLines"
	StateMutationLines      = "stateMutationLines"
	ReactStylePropLines     = "reactStylePropLines"

	// Vue facts.
	VHTMLLines           = "vHtmlLines"
	VForNoKeyLines       = "vForNoKeyLines"
	PropMutationLines    = "propMutationLines"
	StaticStyleAttrLines = "staticStyleAttrLines"

	// Angular facts.
	BypassSanitizerLines      = "bypassSanitizerLines"
	TemplateFunctionCallLines = "templateFunctionCallLines"
	DefaultChangeDetection    = "defaultChangeDetection"
)

var vocabulary = map[string]Kind{
	FilePath:    KindString,
	Language:    KindString,
	Framework:   KindString,
	FileLines:   KindInt,
	IsTestFile:  KindBool,
	HasTestFile: KindBool,

	TodoLines:            KindStringSeq,
	CommentedCodeLines:   KindStringSeq,
	ConsoleLines:         KindStringSeq,
	MagicNumberLines:     KindStringSeq,
	DuplicateBlockLines:  KindStringSeq,
	MaxNestingDepth:      KindInt,
	ShortIdentifiers:     KindStringSet,
	SnakeCaseIdentifiers: KindStringSet,

	UsesAnyType:            KindBool,
	AnyTypeLines:           KindStringSeq,
	MissingReturnTypeLines: KindStringSeq,
	TSSuppressLines:        KindStringSeq,
	NonNullAssertionCount:  KindInt,

	ImportCount:          KindInt,
	DeepImportLines:      KindStringSeq,
	LayerViolationLines:  KindStringSeq,
	CircularImportChains: KindStringSeq,
	PropCount:            KindInt,
	FetchInComponent:     KindBool,
	HasJSX:               KindBool,

	WholeLibraryImportLines: KindStringSeq,
	MaxLoopNesting:          KindInt,
	BlockingCallLines:       KindStringSeq,

	ImagesMissingAlt:      KindStringSeq,
	ClickWithoutKeyLines:  KindStringSeq,
	InputsMissingLabel:    KindStringSeq,
	PositiveTabIndexLines: KindStringSeq,

	DOMSinkLines:       KindStringSeq,
	SinkHasUserInput:   KindBool,
	SecretLiteralLines: KindStringSeq,
	JavascriptURLLines: KindStringSeq,
	TargetBlankLines:   KindStringSeq,
	EvalLines:          KindStringSeq,

	SkippedTestLines:  KindStringSeq,
	FocusedTestLines:  KindStringSeq,
	TestCount:         KindInt,
	AssertionCount:    KindInt,
	SnapshotTestCount: KindInt,

	InlineStyleLines: KindStringSeq,
	ImportantLines:   KindStringSeq,
	HexColorLines:    KindStringSeq,

	EffectsMissingDepsLines: KindStringSeq,
	DangerousHTMLLines:      KindStringSeq,
	IndexKeyLines:           KindStringSeq,
	StateMutationLines:      KindStringSeq,
	ReactStylePropLines:     KindStringSeq,

	VHTMLLines:           KindStringSeq,
	VForNoKeyLines:       KindStringSeq,
	PropMutationLines:    KindStringSeq,
	StaticStyleAttrLines: KindStringSeq,

	BypassSanitizerLines:      KindStringSeq,
	TemplateFunctionCallLines: KindStringSeq,
	DefaultChangeDetection:    KindBool,
}

// KnownKind returns the declared kind of a vocabulary fact name.
func KnownKind(name string) (Kind, bool) {
	k, ok := vocabulary[name]
	return k, ok
}

// Vocabulary returns all declared fact names in sorted order.
func Vocabulary() []string {
	names := make([]string, 0, len(vocabulary))
	for name := range vocabulary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
