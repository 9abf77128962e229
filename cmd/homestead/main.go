package main

import "github.com/andrescamacho/homestead-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
