package main

import "github.com/akulij/zkparser/internal/cli"

func main() {
	cli.Execute()
}
