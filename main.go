package main

import "tb/cmd"

func main() {
	cmd.Execute()
}
