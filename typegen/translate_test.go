package typegen_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
	"github.com/teranos/rs2ts/typegen"
	"github.com/teranos/rs2ts/typegen/typescript"
)

func person() *decl.Record {
	return &decl.Record{Name: "Person", Fields: []decl.Field{
		{Key: decl.NameKey("name"), Type: decl.NewNamed("String")},
		{Key: decl.NameKey("age"), Type: decl.NewNamed("u8")},
		{Key: decl.NameKey("has_gut_issues"), Type: decl.NewNamed("bool")},
	}}
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Logger = zap.NewNop().Sugar() })
	return logs
}

func TestTranslate_EmptyInputEmitsPrelude(t *testing.T) {
	res, err := typegen.Translate(context.Background(), typescript.NewGenerator(), nil, typegen.Options{})
	require.NoError(t, err)

	assert.Equal(t, typescript.Prelude(), res.Text)
	assert.Empty(t, res.Declarations)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "typescript", res.Language)
}

func TestTranslate_SkipsUnsupportedInOrder(t *testing.T) {
	logs := observeLogs(t)

	items := []decl.Item{
		&decl.Alias{Name: "Integer32", Type: decl.NewNamed("i32")},
		&decl.Unsupported{Label: "fn item"},
		person(),
	}

	res, err := typegen.Translate(context.Background(), typescript.NewGenerator(), items, typegen.Options{})
	require.NoError(t, err)

	want := typescript.Prelude() +
		"export type Integer32 = number;\n" +
		"export interface Person {name:string;age:number;has_gut_issues:boolean;};\n"
	assert.Equal(t, want, res.Text)
	assert.Equal(t, []string{"Integer32", "Person"}, res.Names())

	require.Len(t, res.Diagnostics, 1)
	diag := res.Diagnostics[0]
	assert.Equal(t, 1, diag.Index)
	assert.Equal(t, typegen.DiagnosticUnsupported, diag.Kind)
	assert.Equal(t, "fn item: unsupported construct", diag.Message)
	assert.Equal(t, 1, res.Skipped())

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Skipping declaration", warnings[0].Message)
	assert.EqualValues(t, 1, warnings[0].ContextMap()[logger.FieldIndex])
}

func TestTranslate_StructuralViolation(t *testing.T) {
	observeLogs(t)

	items := []decl.Item{
		&decl.Union{Name: "Empty"},
		&decl.Record{Name: "Twice", Fields: []decl.Field{
			{Key: decl.NameKey("a"), Type: decl.NewNamed("i32")},
			{Key: decl.NameKey("a"), Type: decl.NewNamed("i32")},
		}},
		&decl.Alias{Name: "Ok", Type: decl.NewNamed("bool")},
	}

	res, err := typegen.Translate(context.Background(), typescript.NewGenerator(), items, typegen.Options{})
	require.NoError(t, err)

	assert.Equal(t, typescript.Prelude()+"export type Ok = boolean;\n", res.Text)
	require.Len(t, res.Diagnostics, 2)
	for i, d := range res.Diagnostics {
		assert.Equal(t, i, d.Index)
		assert.Equal(t, typegen.DiagnosticStructural, d.Kind)
	}
	assert.Equal(t, "Empty", res.Diagnostics[0].Item)
}

func TestTranslate_AllSkippedStillEmitsPrelude(t *testing.T) {
	observeLogs(t)

	items := []decl.Item{
		&decl.Unsupported{Name: "main", Label: "fn item"},
		&decl.Unsupported{Name: "Trait", Label: "trait item"},
		nil,
	}
	res, err := typegen.Translate(context.Background(), typescript.NewGenerator(), items, typegen.Options{})
	require.NoError(t, err)

	assert.Equal(t, typescript.Prelude(), res.Text)
	assert.Len(t, res.Diagnostics, 3)
	assert.Equal(t, typegen.DiagnosticStructural, res.Diagnostics[2].Kind)
}

func TestTranslate_PreludeExactlyOnce(t *testing.T) {
	items := []decl.Item{person(), person(), person()}
	res, err := typegen.Translate(context.Background(), typescript.NewGenerator(), items, typegen.Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Text, typescript.Prelude()))
	assert.Equal(t, 1, strings.Count(res.Text, "type Option<T> = T | undefined;"))
	// duplicates are emitted as given
	assert.Equal(t, 3, strings.Count(res.Text, "export interface Person "))
}

func manyItems(n int) []decl.Item {
	items := make([]decl.Item, 0, n)
	for i := 0; i < n; i++ {
		switch i % 3 {
		case 0:
			items = append(items, &decl.Alias{Name: fmt.Sprintf("A%d", i), Type: decl.NewNamed("Vec", decl.NewNamed("u32"))})
		case 1:
			items = append(items, &decl.Unsupported{Name: fmt.Sprintf("f%d", i), Label: "fn item"})
		default:
			items = append(items, &decl.Union{Name: fmt.Sprintf("U%d", i), Variants: []decl.Variant{
				{Name: "Unit", Payload: decl.NoPayload{}},
				{Name: "Value", Payload: &decl.SinglePayload{Type: decl.NewNamed("Option", decl.NewNamed("String"))}},
			}})
		}
	}
	return items
}

func TestTranslate_ParallelMatchesSequential(t *testing.T) {
	observeLogs(t)
	items := manyItems(200)
	gen := typescript.NewGenerator()

	seq, err := typegen.Translate(context.Background(), gen, items, typegen.Options{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		par, err := typegen.Translate(context.Background(), gen, items, typegen.Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, seq.Text, par.Text, "workers=%d", workers)
		assert.Equal(t, seq.Diagnostics, par.Diagnostics, "workers=%d", workers)
		assert.Equal(t, seq.Names(), par.Names(), "workers=%d", workers)
	}
}

func TestTranslate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		res, err := typegen.Translate(ctx, typescript.NewGenerator(), manyItems(10), typegen.Options{Workers: workers})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestTranslate_NilGenerator(t *testing.T) {
	_, err := typegen.Translate(context.Background(), nil, nil, typegen.Options{})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	gen := typescript.NewGenerator()

	text, err := typegen.Render(gen, &decl.Alias{Name: "Integer32", Type: decl.NewNamed("i32")})
	require.NoError(t, err)
	assert.Equal(t, "export type Integer32 = number;", text)

	_, err = typegen.Render(gen, &decl.Unsupported{})
	assert.True(t, errors.IsUnsupported(err))
	assert.Equal(t, "unsupported declaration: unsupported construct", err.Error())

	_, err = typegen.Render(gen, &decl.Alias{Type: decl.NewNamed("i32")})
	assert.True(t, errors.IsStructural(err))
}
