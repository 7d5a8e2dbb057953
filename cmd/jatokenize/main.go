package main

import "github.com/masamichhhhi/go-ja-tokenstream/internal/cli"

func main() {
	cli.Execute()
}
