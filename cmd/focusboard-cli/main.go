package main

import "focusboard/cmd/focusboard-cli/cmd"

func main() {
	cmd.Execute()
}
