//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	binaryPath = "bin/buddha"
	glslDir    = "engine/renderer/shaders/glsl"
)

type Build mg.Namespace

// Runs go mod download and tidy.
func (Build) Deps() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	return goTidy()
}

// Checks every embedded GLSL source with glslangValidator.
func (Build) Shaders() error {
	files, err := filepath.Glob(filepath.Join(glslDir, "*.*"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := executeCmd("glslangValidator", withArgs(f)); err != nil {
			return err
		}
	}
	return nil
}

// Builds the demo binary into bin/.
func (Build) Binary() error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("build", "-o", binaryPath, "."), withStream())
	return err
}
