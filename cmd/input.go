package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jview/pkg/core"
	"github.com/oakwood-commons/jview/pkg/loader"
	"github.com/oakwood-commons/jview/pkg/logger"
)

// inputLoader reads the command's inputs into an arena, running each
// document through the engine's transforms.
type inputLoader struct {
	format loader.Format
	engine *core.Engine
	stdin  io.Reader
	stderr io.Writer
	log    logr.Logger
}

// load parses every path, or stdin when paths is empty. Failures are
// reported on stderr and counted; they never stop the remaining inputs.
// Empty stdin is skipped without a message.
func (l inputLoader) load(paths []string) (*loader.Arena, int) {
	arena := &loader.Arena{}
	failures := 0

	if len(paths) == 0 {
		doc, err := loader.LoadReader(loader.StdinName, l.stdin, l.format)
		switch {
		case errors.Is(err, loader.ErrEmptyInput):
			l.log.V(1).Info("stdin is empty")
		case err != nil:
			fmt.Fprintf(l.stderr, "Error parsing JSON in %s: %v\n", loader.StdinName, err)
			failures++
		default:
			if l.add(arena, doc) != nil {
				failures++
			}
		}
		return arena, failures
	}

	for _, path := range paths {
		doc, err := loader.LoadFile(path, l.format)
		if err != nil {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				fmt.Fprintf(l.stderr, "Failed to open file: %s\n", path)
			} else {
				fmt.Fprintf(l.stderr, "Error parsing JSON in %s: %v\n", path, err)
			}
			failures++
			continue
		}
		if l.add(arena, doc) != nil {
			failures++
		}
	}
	return arena, failures
}

func (l inputLoader) add(arena *loader.Arena, doc *loader.Document) error {
	lgr := logger.WithValues(&l.log, logger.InputKey, doc.Name, logger.FormatKey, string(doc.Format))
	if err := l.engine.Transform(doc); err != nil {
		fmt.Fprintf(l.stderr, "Error evaluating expression on %s: %v\n", doc.Name, err)
		return err
	}
	arena.Add(doc)
	lgr.V(1).Info("document loaded", "bytes", doc.Size)
	return nil
}
