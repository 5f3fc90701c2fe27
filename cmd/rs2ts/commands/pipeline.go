package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/teranos/rs2ts/am"
	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/logger"
	"github.com/teranos/rs2ts/rustsrc"
	"github.com/teranos/rs2ts/typegen"
	"github.com/teranos/rs2ts/typegen/typescript"
)

// stdinName is the input path that reads standard input
const stdinName = "-"

// run holds the result of one pass over the configured inputs
type run struct {
	result *typegen.Result
	inputs []string
}

// translateInputs parses every input in order and translates the combined
// item sequence. Parse errors are fatal; untranslatable items are not.
func translateInputs(ctx context.Context, cfg *am.Config, stdin io.Reader) (*run, error) {
	if len(cfg.Input) == 0 {
		return nil, errors.WithHint(
			errors.New("no input files"),
			"pass -i/--input or set input in rs2ts.toml")
	}
	log := logger.LoggerFromContext(ctx)
	start := time.Now()

	var items []decl.Item
	for _, path := range cfg.Input {
		fileItems, err := parseInput(path, stdin)
		if err != nil {
			return nil, err
		}
		logger.LoggerFromContext(logger.WithFile(ctx, path)).Debugw("Parsed input",
			logger.FieldCount, len(fileItems))
		items = append(items, fileItems...)
	}

	res, err := typegen.Translate(ctx, typescript.NewGenerator(), items, typegen.Options{
		Workers: cfg.GetWorkers(),
	})
	if err != nil {
		return nil, err
	}

	log.Infow("Translated inputs",
		"inputs", len(cfg.Input),
		logger.FieldCount, len(res.Declarations),
		"skipped", res.Skipped(),
		logger.FieldWorkers, cfg.GetWorkers(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return &run{result: res, inputs: cfg.Input}, nil
}

func parseInput(path string, stdin io.Reader) ([]decl.Item, error) {
	if path != stdinName {
		return rustsrc.ParseFile(path)
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	src, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stdin")
	}
	return rustsrc.Parse("<stdin>", string(src))
}

// writeOutput writes text to path, creating parent directories, or to w
// when path is empty
func writeOutput(path, text string, w io.Writer) error {
	if path == "" {
		_, err := io.WriteString(w, text)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(text), am.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
