package main

import (
	"github.com/neuronlabs/includes/internal/cli"
)

func main() {
	cli.Execute()
}
