// Command methodray-lsp runs the language server over stdio.
package main

import (
	"context"
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stderr, "methodray-lsp: ", log.LstdFlags)
	s := newServer(os.Stdin, os.Stdout, logger)
	if err := s.run(context.Background()); err != nil {
		logger.Fatal(err)
	}
}
