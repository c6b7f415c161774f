package main

import "github.com/djh816/Rustle/cmd"

func main() {
	cmd.Execute()
}
