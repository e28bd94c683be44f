package main

import "github.com/kamal-hamza/alib-cli/cmd"

func main() {
	cmd.Execute()
}
