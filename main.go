package main

import "github.com/sadopc/chronograph/internal/cli"

func main() {
	cli.Execute()
}
