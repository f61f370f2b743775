package main

import "github.com/e6data/sqlporter/internal/cli"

func main() {
	cli.Execute()
}
