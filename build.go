//go:build ignore

// build.go - transactions-eda build script
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: build, test, clean, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	module     = "github.com/Fekt0ral/Exploratory-data-analysis-project"
	binaryName = "eda"
	distDir    = "dist"
)

var (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
)

func main() {
	target := flag.String("target", "build", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	var err error
	switch *target {
	case "build":
		err = build(*verbose, false)
	case "test":
		err = runTests(*verbose)
	case "clean":
		err = clean()
	case "release":
		err = release(*verbose)
	default:
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("Completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "     transactions-eda - Build System       " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

// build compiles cmd/eda into dist, stamping the version variables
func build(verbose, stripped bool) error {
	printInfo("Building " + binaryName + "...")

	if err := os.MkdirAll(distDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", distDir, err)
	}

	ldflags := fmt.Sprintf("-X %s/pkg/contracts.BuildTime=%s -X %s/pkg/contracts.GitCommit=%s",
		module, time.Now().UTC().Format(time.RFC3339), module, gitCommit())
	if stripped {
		ldflags = "-s -w " + ldflags
	}

	output := filepath.Join(distDir, binaryName)
	if runtime.GOOS == "windows" {
		output += ".exe"
	}

	args := []string{"build", "-ldflags", ldflags, "-o", output, "./cmd/eda"}
	if verbose {
		args = append([]string{"build", "-v"}, args[1:]...)
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
	}

	if err := run(verbose, "go", args...); err != nil {
		return fmt.Errorf("failed to build %s: %w", binaryName, err)
	}

	if info, err := os.Stat(output); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", output, float64(info.Size())/1024/1024))
	}
	return nil
}

func runTests(verbose bool) error {
	printInfo("Running Go tests...")
	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	if err := run(true, "go", args...); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	printSuccess("All tests passed")
	return nil
}

func clean() error {
	printInfo("Cleaning build artifacts...")
	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("failed to clean %s: %w", distDir, err)
	}
	return nil
}

// release builds a stripped, CGO-free binary and a VERSION file
func release(verbose bool) error {
	if err := clean(); err != nil {
		return err
	}
	os.Setenv("CGO_ENABLED", "0")

	if err := build(verbose, true); err != nil {
		return err
	}

	content := fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\n",
		binaryName, gitCommit(), time.Now().Format("2006-01-02 15:04:05"))
	return os.WriteFile(filepath.Join(distDir, "VERSION.txt"), []byte(content), 0644)
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func run(stream bool, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if stream {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func showHelp() {
	fmt.Println("Usage: go run build.go [-target=TARGET] [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  build     Build dist/eda (default)")
	fmt.Println("  test      Run all tests with the race detector")
	fmt.Println("  clean     Remove dist")
	fmt.Println("  release   Build a stripped release binary")
}
