package main

import "locize-sync/cmd"

func main() {
	cmd.Execute()
}
