package main

import "github.com/gaurav-prasanna/clip-to-notion/cmd"

func main() {
	cmd.Execute()
}
