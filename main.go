package main

import (
	"github.com/agoraforum/agora/cmd"
)

func main() {
	cmd.Execute()
}
