package main

import "github.com/jask/pinpad/cmd/pinpad/cmd"

func main() {
	cmd.Execute()
}
