package main

import "github.com/headcheck/headcheck/cmd"

// execCmd is swappable for tests.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
