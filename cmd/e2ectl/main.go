package main

import "github.com/zatekoja/projectapi-e2e/internal/cli"

func main() {
	cli.Execute()
}
