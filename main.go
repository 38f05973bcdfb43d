package main

import "github.com/robertgumeny/retemplate/cmd"

func main() {
	cmd.Execute()
}
