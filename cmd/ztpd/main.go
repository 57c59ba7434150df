package main

import (
	"log"

	"github.com/devsecops/zero-trust-pipeline/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
