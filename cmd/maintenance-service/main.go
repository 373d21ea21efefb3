package main

import (
	"log"

	"github.com/maintenance-system/maintenance-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
