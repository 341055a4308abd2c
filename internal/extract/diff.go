package extract

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// FromDiff parses a unified diff and extracts facts from the added lines
// of each changed file. Deleted and binary files are skipped. For
// anything but a newly added file the extraction is sparse: facts that
// need the whole file, like the line count, stay unset.
func FromDiff(r io.Reader) ([]Unit, error) {
	parsed, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var units []Unit
	for _, f := range parsed {
		if f.IsBinary || f.IsDelete {
			continue
		}
		name := f.NewName
		if name == "" {
			name = f.OldName
		}
		if !sourceExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		var added []line
		lastLine := 0
		for _, frag := range f.TextFragments {
			num := int(frag.NewPosition)
			for _, ln := range frag.Lines {
				switch ln.Op {
				case gitdiff.OpAdd:
					added = append(added, line{num: num, text: strings.TrimRight(ln.Line, "\n")})
					num++
				case gitdiff.OpContext:
					num++
				}
			}
			if num-1 > lastLine {
				lastLine = num - 1
			}
		}
		if len(added) == 0 {
			continue
		}

		totalLines := 0
		if f.IsNew {
			totalLines = lastLine
		}
		units = append(units, Unit{
			Path:  name,
			Facts: buildSource(name, added, totalLines).Build(),
		})
	}
	return units, nil
}

// FromDiffString is FromDiff for callers that already hold the diff in
// memory.
func FromDiffString(raw string) ([]Unit, error) {
	return FromDiff(strings.NewReader(raw))
}

// GitDiff runs git diff in repoDir with the given extra arguments and
// returns the raw unified output.
func GitDiff(repoDir string, args ...string) (string, error) {
	fullArgs := append([]string{"diff"}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Dir = repoDir

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git diff: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

// GitDiffRange returns the diff for a commit range like "main...HEAD".
func GitDiffRange(repoDir, rng string) (string, error) {
	return GitDiff(repoDir, rng)
}

// RepoRoot resolves the enclosing git worktree root for dir.
func RepoRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
