package main

import "github.com/datasweep/datasweep-cli/cmd"

func main() {
	cmd.Execute()
}
