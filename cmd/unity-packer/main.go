package main

import "github.com/oshokin/unity-packer/cmd/unity-packer/cmd"

func main() {
	cmd.Execute()
}
