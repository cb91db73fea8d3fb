package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wordsplice/internal/pipeline"
)

// newConfirm returns a yes/no prompt reading answers from in. With assumeYes
// every question is accepted without reading input.
func newConfirm(in io.Reader, out io.Writer, assumeYes bool) pipeline.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		if assumeYes {
			fmt.Fprintf(out, "%s [y/N] y\n", prompt)
			return true, nil
		}
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
