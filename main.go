package main

import "stillcut/cmd"

func main() {
	cmd.Execute()
}
