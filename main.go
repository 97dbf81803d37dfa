package main

import "bitc/cmd"

func main() {
	cmd.Execute()
}
