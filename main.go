package main

import (
	"github.com/ColonelBlimp/morserx/cmd"
	"github.com/ColonelBlimp/morserx/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
