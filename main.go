package main

import "github.com/linkfarm/linkfarm/cmd/root"

func main() {
	root.Execute()
}
