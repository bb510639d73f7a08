package main

import "garage/internal/cli"

func main() {
	cli.Execute()
}
