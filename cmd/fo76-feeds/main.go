package main

import "github.com/pfrederiksen/fo76-feeds/internal/cli"

func main() {
	cli.Execute()
}
