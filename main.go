package main

import "downsize/cmd"

func main() {
	cmd.Execute()
}
