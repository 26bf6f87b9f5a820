package main

import "github.com/OpenTraceLab/ledring/cmd/ledring/cmd"

func main() {
	cmd.Execute()
}
