package main

import "github.com/arjunsehgal/vitalis/internal/cmd"

func main() {
	cmd.Execute()
}
