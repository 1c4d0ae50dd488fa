package main

import "storage-bridge/cmd"

func main() {
	cmd.Execute()
}
