package main

import "github.com/axlocate/axlocate/cmd"

func main() {
	cmd.Execute()
}
