package main

import "github.com/sadopc/desafio200/cmd"

func main() {
	cmd.Execute()
}
