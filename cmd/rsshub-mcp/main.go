// ABOUTME: Entry point for rsshub-mcp CLI
// ABOUTME: Initializes and executes root command

package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
