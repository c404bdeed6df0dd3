package main

import "github.com/oshokin/alarm-clock/cmd/alarm-clock-server/cmd"

func main() {
	cmd.Execute()
}
