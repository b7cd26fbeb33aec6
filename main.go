package main

import (
	"os"

	"github.com/gym-gazebo/gzlaunch/cmd"
	"github.com/gym-gazebo/gzlaunch/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
