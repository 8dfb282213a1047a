package main

import "github.com/gatherkit/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
