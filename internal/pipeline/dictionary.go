package pipeline

import (
	"bufio"
	"context"
	"os"

	"wordsplice/internal/fileutil"
	"wordsplice/internal/logging"
	"wordsplice/internal/wordindex"
)

// DictionaryResult describes a written dictionary.
type DictionaryResult struct {
	Output string
	Words  int
}

// Dictionary writes the sorted distinct words of the combined index to out.
func (r *Runner) Dictionary(ctx context.Context, paths []string, out string) (DictionaryResult, error) {
	idx, _, err := r.Index(ctx, paths)
	if err != nil {
		return DictionaryResult{}, err
	}
	err = fileutil.WriteAtomic(out, 0o644, func(f *os.File) error {
		w := bufio.NewWriter(f)
		if err := wordindex.WriteDictionary(w, idx); err != nil {
			return err
		}
		return w.Flush()
	})
	if err != nil {
		return DictionaryResult{}, err
	}
	logging.WithContext(ctx, r.logger).Info("dictionary written",
		logging.String("output", out),
		logging.Int("words", idx.WordCount()),
	)
	return DictionaryResult{Output: out, Words: idx.WordCount()}, nil
}
