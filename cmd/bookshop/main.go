package main

import (
	"log"

	"github.com/Skotchmaster/bookshop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("bookshop: %v", err)
	}
}
