//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the pipeline with the default config.
func (Run) Pipeline() error {
	fmt.Println("Run pipeline...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the pipeline against the generated sample meshes.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "config/demo.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
