// Command cvlint checks CV JSON files offline. Each file is imported into a
// fresh editor form and exported again, which is exactly what the dashboard
// would keep of it.
//
//	cvlint [-w] file.json...
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"cv-editor/internal/usecase"
)

func main() {
	write := flag.Bool("w", false, "write the normalized document back to the file")
	quiet := flag.Bool("q", false, "only report problems")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: cvlint [-w] [-q] file.json...")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := lint(path, *write, *quiet); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func lint(path string, write, quiet bool) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	e := usecase.NewEditor(nil, nil, usecase.Options{})
	if _, err := e.Import(in); err != nil {
		return err
	}
	out, err := e.Export()
	if err != nil {
		return err
	}
	out = append(out, '\n')

	switch {
	case write:
		if bytes.Equal(in, out) {
			return nil
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("normalized %s\n", path)
		}
	case !quiet:
		os.Stdout.Write(out)
	}
	return nil
}
