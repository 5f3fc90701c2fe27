package typegen

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
)

// Options controls a translation run.
type Options struct {
	// Workers bounds how many declarations render concurrently.
	// Values <= 1 render sequentially.
	Workers int
}

type rendered struct {
	text string
	err  error
}

// Translate renders items with gen. The returned Result holds the prelude
// followed by each successfully rendered declaration, every one terminated
// by a newline, in input order. Items that cannot be rendered are reported
// in Result.Diagnostics and logged at WARN; they never fail the run.
//
// The only errors returned are context cancellation and a nil generator.
func Translate(ctx context.Context, gen Generator, items []decl.Item, opts Options) (*Result, error) {
	if gen == nil {
		return nil, errors.New("typegen: nil generator")
	}
	log := logger.LoggerFromContext(ctx)
	start := time.Now()

	out := make([]rendered, len(items))
	if opts.Workers > 1 && len(items) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i, it := range items {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				text, err := Render(gen, it)
				out[i] = rendered{text: text, err: err}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, it := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			text, err := Render(gen, it)
			out[i] = rendered{text: text, err: err}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Language:     gen.Language(),
		Declarations: []Declaration{},
		Diagnostics:  []Diagnostic{},
	}

	var sb strings.Builder
	sb.WriteString(gen.Prelude())
	for i, r := range out {
		if r.err != nil {
			diag := newDiagnostic(i, items[i], r.err)
			res.Diagnostics = append(res.Diagnostics, diag)
			log.Warnw("Skipping declaration",
				logger.FieldItem, diag.Item,
				logger.FieldIndex, i,
				logger.FieldKind, string(diag.Kind),
				"error", diag.Message)
			continue
		}
		sb.WriteString(r.text)
		sb.WriteString("\n")
		res.Declarations = append(res.Declarations, Declaration{
			Index: i,
			Name:  items[i].ItemName(),
			Kind:  items[i].ItemKind(),
			Text:  r.text,
		})
	}
	res.Text = sb.String()

	log.Debugw("Translation complete",
		logger.FieldLanguage, res.Language,
		logger.FieldCount, len(res.Declarations),
		"skipped", res.Skipped(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, nil
}

// Render validates a single item and renders it with gen, without a
// trailing newline. Unsupported items and structural violations return an
// error classified by errors.IsUnsupported / errors.IsStructural.
func Render(gen Generator, it decl.Item) (string, error) {
	if err := decl.Validate(it); err != nil {
		return "", err
	}
	switch d := it.(type) {
	case *decl.Alias:
		return gen.GenerateAlias(d)
	case *decl.Record:
		return gen.GenerateRecord(d)
	case *decl.Union:
		return gen.GenerateUnion(d)
	case *decl.Unsupported:
		if d.Label == "" {
			return "", errors.NewUnsupportedf("unsupported declaration")
		}
		return "", errors.NewUnsupportedf("%s", d.Label)
	default:
		return "", errors.NewUnsupportedf("declaration of type %T", it)
	}
}
