// Package main provides the entry point for the boardmerge CLI tool.
package main

import (
	"os"

	"github.com/subjectlab/boardmerge/cmd/boardmerge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
