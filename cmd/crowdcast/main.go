package main

import (
	"github.com/p-doom/crowd-cast/cmd/crowdcast/commands"
)

func main() {
	commands.Execute()
}
