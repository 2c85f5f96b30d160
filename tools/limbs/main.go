package main

import "github.com/zostay/go-limbs/tools/limbs/cmd"

func main() {
	cmd.Execute()
}
