package main

import "github.com/reoring/omnitree/internal/cli"

func main() {
	cli.Execute()
}
