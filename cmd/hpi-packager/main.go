package main

import "hpi-packager/internal/cli"

func main() {
	cli.Execute()
}
