package main

import "github.com/dgallion1/mdtoc/internal/cli"

func main() {
	cli.Execute()
}
