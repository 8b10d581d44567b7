package main

import "appsuite-be/cmd"

func main() {
	cmd.Execute()
}
