package main

import "github.com/miyakoshi-dev/gh-profile-stats/cmd"

func main() {
	cmd.Execute()
}
