//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo. BUDDHA_CONFIG overrides the config file.
func (Run) Demo() error {
	mg.Deps(Build.Shaders)

	config := os.Getenv("BUDDHA_CONFIG")
	if config == "" {
		config = "config/buddha.toml"
	}
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", config), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
