package wordindex

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDictionary writes the sorted distinct words of idx, one per line.
func WriteDictionary(w io.Writer, idx *Index) error {
	bw := bufio.NewWriter(w)
	for _, word := range idx.Words() {
		if _, err := fmt.Fprintln(bw, word); err != nil {
			return fmt.Errorf("write dictionary: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	return nil
}
