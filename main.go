package main

import (
	"github.com/jjtimmons/pipekit/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
