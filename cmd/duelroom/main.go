package main

import "github.com/mcoot/duelroom/internal/cli"

func main() {
	cli.Execute()
}
