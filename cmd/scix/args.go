// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().String("file", "", `read bibcodes one per line from a file ("-" for stdin)`)
}

// bibcodeArgs collects bibcodes from the arguments and the --file flag.
// Blank lines and lines starting with # are ignored.
func bibcodeArgs(cmd *cobra.Command, args []string) ([]string, error) {
	bibcodes := append([]string(nil), args...)

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		var r io.Reader = cmd.InOrStdin()
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("opening bibcode file: %w", err)
			}
			defer f.Close()
			r = f
		}
		lines, err := readLines(r)
		if err != nil {
			return nil, fmt.Errorf("reading bibcode file: %w", err)
		}
		bibcodes = append(bibcodes, lines...)
	}

	if len(bibcodes) == 0 {
		return nil, fmt.Errorf("provide one or more bibcodes as arguments or with --file")
	}
	return bibcodes, nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
