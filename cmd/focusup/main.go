package main

import (
	"context"
	"log"

	"github.com/adibhanna/focusup/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		log.Fatal(err)
	}
}
