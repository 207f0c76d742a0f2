//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "abbrevkit"

var Default = Build

// Build compiles the abbrevkit binary
func Build() error {
	mg.Deps(Vet)
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/abbrevkit")
}

// Install installs abbrevkit into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/abbrevkit")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Run executes the full pipeline in the current directory
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./"+binary, "run")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binary)
}
