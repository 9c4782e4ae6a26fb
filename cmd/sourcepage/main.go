package main

import (
	"os"

	"github.com/MrSnakeDoc/sourcepage/internal/app"
)

func main() {
	// Run logs its own errors.
	if err := app.New().Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
