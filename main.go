package main

import "stockcount/cmd"

func main() {
	cmd.Execute()
}
