package main

import "twogether/app/cmd"

func main() {
	cmd.Execute()
}
