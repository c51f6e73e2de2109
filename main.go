package main

import "github.com/pders01/version-archive/cmd"

func main() {
	cmd.Execute()
}
