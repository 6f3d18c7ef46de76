package main

import "github.com/eshaffer321/cart-bundle-transforms/internal/cli"

func main() {
	cli.Execute()
}
