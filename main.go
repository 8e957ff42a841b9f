package main

import "github.com/hospos-dev/hospos/cmd"

func main() {
	cmd.Execute()
}
