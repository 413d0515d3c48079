package main

import "github.com/Aaron-Ben/Magentic-mini/cmd"

func main() {
	cmd.Execute()
}
