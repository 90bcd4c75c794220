package main

import "blogly/cmd"

func main() {
	cmd.Execute()
}
