package main

import "github.com/ijanvdwesz/credential-management/cmd"

func main() {
	cmd.Execute()
}
