package main

import "github.com/clearlydefined/reconciler/cmd"

func main() {
	cmd.Execute()
}
