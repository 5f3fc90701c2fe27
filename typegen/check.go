package typegen

import (
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/teranos/rs2ts/errors"
)

// CheckResult holds the result of comparing freshly generated output with
// the file on disk.
type CheckResult struct {
	UpToDate bool
	// Missing is true when the output file does not exist yet
	Missing bool
	// Diff is a unified diff from the existing file to the generated text
	Diff string
}

// CompareFile compares generated text with the file at path.
// A missing file is reported as out of date rather than as an error.
func CompareFile(path, generated string) (*CheckResult, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		diff, derr := Diff("/dev/null", path, "", generated)
		if derr != nil {
			return nil, derr
		}
		return &CheckResult{Missing: true, Diff: diff}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if string(existing) == generated {
		return &CheckResult{UpToDate: true}, nil
	}

	diff, err := Diff(path, path+" (generated)", string(existing), generated)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Diff: diff}, nil
}

// Diff returns a unified diff with three lines of context.
func Diff(fromName, toName, from, to string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to diff")
	}
	return diff, nil
}
