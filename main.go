package main

import "cellar/cmd"

func main() {
	cmd.Execute()
}
