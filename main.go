package main

import "stress-advisor/cmd"

func main() {
	cmd.Execute()
}
