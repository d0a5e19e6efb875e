package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/limaJavier/satmodeler/pkg/sat"
)

func main() {
	setConfigPath()
	cli.MainContext(context.Background(), Root())
}

// setConfigPath points the default config at the one next to the executable, if there is one
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}

	path := filepath.Join(filepath.Dir(execPath), sat.ConfigPath)
	if _, err := os.Stat(path); err == nil {
		sat.ConfigPath = path
	}
}
