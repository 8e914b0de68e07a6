package main

import "github.com/f1log/stint-analyzer-go/cmd"

func main() {
	cmd.Execute()
}
