package main

import "github.com/mvp-joe/classdiagram/internal/cli"

func main() {
	cli.Execute()
}
