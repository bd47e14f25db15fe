package main

import "github.com/naka-gawa/profilegen/cmd"

func main() {
	cmd.Execute()
}
