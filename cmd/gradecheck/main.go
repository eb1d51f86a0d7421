// Package main is the entry point for the gradecheck CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/gradecheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
