// SPDX-FileCopyrightText: 2026 The GTerm Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

const pkg = "github.com/gterm/sign-package/cmd/sign-package"

var env map[string]string

func init() {
	env = make(map[string]string)

	gobin, exists := os.LookupEnv("GOBIN")
	if !exists {
		gobin = "./gobin"
	}

	if gobin != "" {
		p, err := filepath.Abs(gobin)
		if err == nil {
			gobin = p
		}
	}

	env["GOBIN"] = gobin
}

func binary() string {
	return filepath.Join(env["GOBIN"], "sign-package")
}

// Install sign-package to gobin directory.
func Install() error {
	rebuild, err := target.Dir(binary(), "cmd", "internal", "go.mod")
	if err != nil {
		return err
	}

	if !rebuild {
		return nil
	}

	return sh.RunWith(env, "go", "install", "-trimpath", pkg)
}

// Run all tests with race detector and coverage.
func Test() error {
	return sh.RunWithV(env, "go", "test",
		"-race",
		"-timeout", "2m",
		"-cover",
		"-coverprofile", filepath.Join(os.TempDir(), "sign-package-cover.out"),
		"./...",
	)
}

// Sign the bundle of the project in the current directory. The artifact is
// checked before the signing tool is run.
func Sign(debug bool) error {
	mg.Deps(Install)

	args := []string{"-check-artifact"}
	if debug {
		args = append(args, "-debug")
	}

	fmt.Printf("sign-package args: %s\n", args)

	return sh.RunV(binary(), args...)
}

// Remove volatile files.
func Clean() error {
	return sh.Rm(env["GOBIN"])
}
