package extract

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revue-dev/revue/internal/fact"
)

// Unit pairs a reviewable file with the facts extracted from it.
type Unit struct {
	Path  string
	Facts *fact.Set
}

// skipDirs are directories no review should descend into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	"vendor":       true,
	".next":        true,
	".nuxt":        true,
}

// sourceExts are the file extensions worth extracting facts from.
var sourceExts = map[string]bool{
	".ts":   true,
	".tsx":  true,
	".js":   true,
	".jsx":  true,
	".mjs":  true,
	".cjs":  true,
	".vue":  true,
	".html": true,
	".css":  true,
	".scss": true,
	".less": true,
}

// scriptExts are the extensions that can carry tests and imports.
var scriptExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".vue": true,
}

// scanned keeps a file's lines and its in-progress fact builder around
// until the project-level passes have run.
type scanned struct {
	path    string
	lines   []line
	builder *fact.Builder
}

// ScanDir extracts facts from every reviewable file under root. Beyond
// the per-file facts, it fills in the ones only a whole-project view can
// answer: the framework a file belongs to when its own imports don't
// say, whether a source file has a test companion, whether a block is
// duplicated across files, and whether relative imports form a cycle.
func ScanDir(root string) ([]Unit, error) {
	var files []*scanned
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)
		lines := splitLines(string(data))
		files = append(files, &scanned{
			path:    rel,
			lines:   lines,
			builder: buildSource(rel, lines, len(lines)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	markManifestFramework(files, root)
	markTestCompanions(files)
	markCrossFileDuplicates(files)
	markImportCycles(files)

	units := make([]Unit, len(files))
	for i, f := range files {
		units[i] = Unit{Path: f.path, Facts: f.builder.Build()}
	}
	return units, nil
}

// ScanFiles extracts facts from an explicit list of files. No
// project-level enrichment happens; callers that want it should point
// ScanDir at the enclosing directory instead.
func ScanFiles(paths []string) ([]Unit, error) {
	var units []Unit
	for _, p := range paths {
		if !sourceExts[strings.ToLower(filepath.Ext(p))] {
			continue
		}
		facts, err := FromFile(p)
		if err != nil {
			return nil, err
		}
		units = append(units, Unit{Path: filepath.ToSlash(p), Facts: facts})
	}
	return units, nil
}

// manifestFramework reads the project's package.json and maps its
// declared dependencies to a framework. Stores, utilities, and services
// rarely import the framework themselves but still belong to it.
func manifestFramework(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return ""
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	has := func(name string) bool {
		_, ok := manifest.Dependencies[name]
		if !ok {
			_, ok = manifest.DevDependencies[name]
		}
		return ok
	}
	switch {
	case has("@angular/core"):
		return fact.FrameworkAngular
	case has("vue"), has("nuxt"):
		return fact.FrameworkVue
	case has("react"), has("next"):
		return fact.FrameworkReact
	}
	return ""
}

// markManifestFramework fills in the framework fact for script files
// whose own source never names one, then runs the framework collectors
// they skipped during the per-file pass.
func markManifestFramework(files []*scanned, root string) {
	fw := manifestFramework(root)
	if fw == "" {
		return
	}
	for _, f := range files {
		if !scriptExts[strings.ToLower(filepath.Ext(f.path))] {
			continue
		}
		if detectFramework(f.path, f.lines) != "" {
			continue
		}
		f.builder.String(fact.Framework, fw)
		collectFramework(f.builder, f.path, f.lines, fw)
	}
}

// subjectBase reduces a file name to the name a test companion would
// share: src/cart.test.ts, src/__tests__/cart.ts, and src/cart.ts all
// reduce to "cart".
func subjectBase(p string) string {
	base := filepath.Base(p)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".test")
	base = strings.TrimSuffix(base, ".spec")
	return base
}

func markTestCompanions(files []*scanned) {
	covered := make(map[string]bool)
	for _, f := range files {
		if isTestPath(f.path) {
			covered[subjectBase(f.path)] = true
		}
	}
	for _, f := range files {
		if isTestPath(f.path) {
			continue
		}
		if !scriptExts[strings.ToLower(filepath.Ext(f.path))] {
			continue
		}
		f.builder.Bool(fact.HasTestFile, covered[subjectBase(f.path)])
	}
}

// markCrossFileDuplicates re-runs the duplicate window across the whole
// project so copy-paste between files is caught too. Each file's
// duplicate fact is rebuilt from its in-file repeats plus any window
// first seen in an earlier file.
func markCrossFileDuplicates(files []*scanned) {
	firstSeen := make(map[string]int)
	for idx, f := range files {
		hashes := make(map[string]bool)
		for _, hash := range blockWindows(f.lines) {
			hashes[hash] = true
		}
		for hash := range hashes {
			if _, ok := firstSeen[hash]; !ok {
				firstSeen[hash] = idx
			}
		}
	}

	for idx, f := range files {
		dupNums := duplicateLineNums(f.lines)
		inFile := make(map[int]bool, len(dupNums))
		for _, num := range dupNums {
			inFile[num] = true
		}
		windows := blockWindows(f.lines)
		nums := make([]int, 0, len(windows))
		for num := range windows {
			nums = append(nums, num)
		}
		sort.Ints(nums)

		var merged []int
		reported := -duplicateWindow
		for _, num := range nums {
			cross := firstSeen[windows[num]] < idx
			if !inFile[num] && !cross {
				continue
			}
			// Overlapping windows repeat the same discovery; keep blocks
			// at least a window apart.
			if !inFile[num] && num-reported < duplicateWindow {
				continue
			}
			merged = append(merged, num)
			reported = num
		}
		if len(merged) == 0 {
			continue
		}
		refs := make([]string, len(merged))
		for i, num := range merged {
			refs[i] = ref(f.path, num)
		}
		f.builder.StringSeq(fact.DuplicateBlockLines, refs...)
	}
}

// markImportCycles resolves relative imports between the scanned files
// and records any cycles as readable chains like
// "src/a.ts -> src/b.ts -> src/a.ts".
func markImportCycles(files []*scanned) {
	index := make(map[string]int)
	for i, f := range files {
		if !scriptExts[strings.ToLower(filepath.Ext(f.path))] {
			continue
		}
		index[strings.TrimSuffix(f.path, path.Ext(f.path))] = i
	}

	edges := make([][]int, len(files))
	for i, f := range files {
		dir := path.Dir(f.path)
		seen := make(map[int]bool)
		for _, ln := range f.lines {
			m := relImportPattern.FindStringSubmatch(ln.text)
			if m == nil {
				continue
			}
			target := path.Clean(path.Join(dir, m[1]))
			j, ok := index[strings.TrimSuffix(target, path.Ext(target))]
			if !ok {
				// A directory import resolves to its index file.
				j, ok = index[target+"/index"]
			}
			if !ok || j == i || seen[j] {
				continue
			}
			edges[i] = append(edges[i], j)
			seen[j] = true
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(files))
	var stack []int
	chains := make([][]string, len(files))
	seenCycles := make(map[string]bool)

	var visit func(i int)
	visit = func(i int) {
		color[i] = gray
		stack = append(stack, i)
		for _, j := range edges[i] {
			if color[j] == white {
				visit(j)
				continue
			}
			if color[j] != gray {
				continue
			}
			start := -1
			for k, v := range stack {
				if v == j {
					start = k
					break
				}
			}
			if start < 0 {
				continue
			}
			members := append([]int(nil), stack[start:]...)
			key := cycleKey(members, files)
			if seenCycles[key] {
				continue
			}
			seenCycles[key] = true
			chain := formatChain(members, files)
			for _, m := range members {
				chains[m] = append(chains[m], chain)
			}
		}
		stack = stack[:len(stack)-1]
		color[i] = black
	}
	for i := range files {
		if color[i] == white {
			visit(i)
		}
	}

	for i, f := range files {
		if len(chains[i]) > 0 {
			f.builder.StringSeq(fact.CircularImportChains, chains[i]...)
		}
	}
}

// cycleKey normalizes a cycle so rotations of the same loop are not
// reported twice.
func cycleKey(members []int, files []*scanned) string {
	paths := make([]string, len(members))
	for i, m := range members {
		paths[i] = files[m].path
	}
	sort.Strings(paths)
	return strings.Join(paths, "|")
}

func formatChain(members []int, files []*scanned) string {
	paths := make([]string, 0, len(members)+1)
	for _, m := range members {
		paths = append(paths, files[m].path)
	}
	paths = append(paths, files[members[0]].path)
	return strings.Join(paths, " -> ")
}
