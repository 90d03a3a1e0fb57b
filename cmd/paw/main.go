package main

import "github.com/Pyro18/codepaw/cmd/paw/root"

func main() {
	root.Execute()
}
