package main

import "testset-sync/cmd"

func main() {
	cmd.Execute()
}
