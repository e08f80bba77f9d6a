package main

import "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/cmd"

func main() {
	cmd.Execute()
}
