package main

import "semnotes/internal/cli"

func main() {
	cli.Execute()
}
