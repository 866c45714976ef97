package main

import (
	cmd "github.com/pytest-kit/testsum/cmd/testsum"
)

func main() {
	cmd.Execute()
}
