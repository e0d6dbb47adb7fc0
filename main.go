package main

import (
	cmd "github.com/slangscope/slangscope/cmd/slangscope"
)

func main() {
	cmd.Execute()
}
