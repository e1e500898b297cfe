package main

import "ipam-migrator/cmd"

func main() {
	cmd.Execute()
}
