package main

import "github.com/packagewjx/student-analyzer/cmd"

func main() {
	cmd.Execute()
}
