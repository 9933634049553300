package main

import (
	"os"

	"k8s.io/klog/v2"

	"metaheuristics/cmd/metaheur/app"
)

func main() {
	cmd := app.NewCommand()
	err := cmd.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
