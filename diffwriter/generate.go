package diffwriter

import (
	"fmt"

	"github.com/kenshaw/requirements/chardiff"
)

// Generate diffs actual against expected using engine and lays out the edit
// script with d. A nil engine uses the default configuration.
func Generate(engine *chardiff.Config, d Decorator, actual, expected string) (*Result, error) {
	if engine == nil {
		engine = chardiff.NewDefaultConfig()
	}
	w, err := NewWriter(d)
	if err != nil {
		return nil, err
	}
	segments := engine.Compute(actual, expected)
	if err := Write(w, segments); err != nil {
		return nil, err
	}
	w.Flush()
	res, err := w.Result()
	if err != nil {
		return nil, err
	}
	res.distance = chardiff.Levenshtein(segments)
	return res, nil
}

// Write feeds segments to w in order.
func Write(w *Writer, segments []chardiff.Segment) error {
	for _, s := range segments {
		var err error
		switch s.Op {
		case chardiff.OpKeep:
			err = w.Keep(s.Text)
		case chardiff.OpInsert:
			err = w.Insert(s.Text)
		case chardiff.OpDelete:
			err = w.Delete(s.Text)
		default:
			err = fmt.Errorf("unknown operation %v: %w", s.Op, ErrInvalidArgument)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
