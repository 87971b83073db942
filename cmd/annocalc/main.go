package main

import (
	"github.com/andrescamacho/annocalc-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
