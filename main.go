package main

import "github.com/papapumpkin/novella/cmd"

func main() {
	cmd.Execute()
}
