package typegen_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/teranos/rs2ts/rustsrc"
	"github.com/teranos/rs2ts/typegen"
	"github.com/teranos/rs2ts/typegen/typescript"
)

// Each archive in testdata holds input.rs, the expected output.ts (without
// the prelude) and diagnostics.txt with one "index kind [item]: message"
// line per skipped item.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			observeLogs(t)

			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)
			sections := make(map[string]string, len(ar.Files))
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
			}
			require.Contains(t, sections, "input.rs")

			items, err := rustsrc.Parse("input.rs", sections["input.rs"])
			require.NoError(t, err)

			for _, workers := range []int{1, 4} {
				res, err := typegen.Translate(context.Background(), typescript.NewGenerator(), items, typegen.Options{Workers: workers})
				require.NoError(t, err)

				assert.Equal(t, typescript.Prelude()+sections["output.ts"], res.Text, "workers=%d", workers)
				assert.Equal(t, sections["diagnostics.txt"], formatDiagnostics(res.Diagnostics), "workers=%d", workers)
			}
		})
	}
}

func formatDiagnostics(diags []typegen.Diagnostic) string {
	var sb strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&sb, "%d %s", d.Index, d.Kind)
		if d.Item != "" {
			sb.WriteString(" " + d.Item)
		}
		sb.WriteString(": " + d.Message + "\n")
	}
	return sb.String()
}
