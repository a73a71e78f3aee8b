//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "subvocab"

var Default = Build

// Build compiles the subvocab binary
func Build() error {
	fmt.Println("Building", binary)
	version := os.Getenv("VERSION")
	ldflags := ""
	if version != "" {
		ldflags = "-X codeberg.org/snonux/subvocab/internal.Version=" + version
	}
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, "./cmd/subvocab")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to $GOPATH/bin
func Install() error {
	mg.Deps(Build)

	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	target := filepath.Join(gopath, "bin", binary)
	fmt.Println("Installing to", target)
	return sh.Copy(target, binary)
}

// Clean removes the build output
func Clean() error {
	return sh.Rm(binary)
}
