// Package main is the entry point for the portfolio admin CLI.
package main

import (
	"os"

	"github.com/folio-works/portfolio-backend/cmd/portfolioctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
