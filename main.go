package main

import "github.com/arsoniv/axenc/cmd"

func main() {
	cmd.Execute()
}
