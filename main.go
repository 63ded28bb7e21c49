package main

import "content-store/cmd"

func main() {
	cmd.Execute()
}
