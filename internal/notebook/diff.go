package notebook

import (
	"github.com/pmezard/go-difflib/difflib"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// DiffSource produces a unified diff between a source's stored content and a
// local variant of it. An empty string means the contents are identical.
func DiffSource(src Source, local string) (string, error) {
	if src.Content == local {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(src.Content),
		B:        difflib.SplitLines(local),
		FromFile: "source/" + src.Title,
		ToFile:   "local/" + src.Title,
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", appErrors.WrapWithContext(err, "compute source diff")
	}
	return text, nil
}
