package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/thaumasiotes/regexp"
)

var (
	headerColor = color.New(color.FgMagenta)
	lineColor   = color.New(color.FgRed)
)

var cli struct {
	Pattern string   `arg:"" name:"pattern" help:"Pattern to look for" type:"string"`
	Paths   []string `arg:"" optional:"" name:"path" help:"Files or directories to search" type:"path"`
	Whole   bool     `name:"whole" short:"w" help:"Report only lines the pattern matches in full"`
}

// matcher covers both compiled forms; the whole flag picks which one.
type matcher interface {
	MatchString(line string) bool
}

type searchAdapter struct{ *regexp.Searcher }

func (a searchAdapter) MatchString(line string) bool { return a.SearchString(line) }

func main() {
	kong.Parse(&cli,
		kong.Name("regrep"),
		kong.Description("Searches files for lines containing a match of a pattern."),
		kong.UsageOnError(),
	)

	var m matcher
	if cli.Whole {
		c, err := regexp.CompileMatch(cli.Pattern)
		if err != nil {
			log.Fatalf("failed to compile pattern: %v", err)
		}
		m = c
	} else {
		c, err := regexp.CompileSearch(cli.Pattern)
		if err != nil {
			log.Fatalf("failed to compile pattern: %v", err)
		}
		m = searchAdapter{c}
	}

	if len(cli.Paths) == 0 {
		if err := searchStdin(m); err != nil {
			log.Fatalf("stdin: %v", err)
		}
		return
	}

	for _, path := range cli.Paths {
		info, err := os.Lstat(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		if info.IsDir() {
			err = searchDir(path, m)
		} else {
			err = searchFile(path, m)
		}

		if err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func searchStdin(m matcher) error {
	scanner := bufio.NewScanner(os.Stdin)
	n := 0
	for scanner.Scan() {
		n++
		if m.MatchString(scanner.Text()) {
			fmt.Printf("%d:%s\n", n, lineColor.Sprint(scanner.Text()))
		}
	}
	return scanner.Err()
}

func searchDir(path string, m matcher) error {
	return filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			// broken symlinks are skipped, everything else is fatal
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}

		return searchFile(path, m)
	})
}

func searchFile(path string, m matcher) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	printedHeader := false
	for i, line := range strings.Split(string(content), "\n") {
		if !m.MatchString(line) {
			continue
		}

		if !printedHeader {
			printedHeader = true
			headerColor.Println(path)
		}
		fmt.Printf("%d:%s\n", i+1, lineColor.Sprint(line))
	}

	if printedHeader {
		fmt.Println()
	}

	return nil
}
