package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/thaumasiotes/regexp/gen"
)

var cli struct {
	Pattern string `arg:"" name:"pattern" help:"Pattern to compile" type:"string"`
	Package string `name:"pkg" default:"main" help:"Package clause of the generated file"`
	Func    string `name:"func" default:"Match" help:"Name of the generated function"`
	Mode    string `name:"mode" default:"match" enum:"match,search" help:"Acceptance mode: match (whole input) or search (any substring)"`
	Output  string `name:"out" short:"o" type:"path" help:"Output file; stdout when omitted"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("regexpgen"),
		kong.Description("Compiles a pattern into a standalone, dependency-free Go matcher."),
		kong.UsageOnError(),
	)

	mode := gen.ModeMatch
	if cli.Mode == "search" {
		mode = gen.ModeSearch
	}

	g, err := gen.New(gen.Config{
		Pattern: cli.Pattern,
		Package: cli.Package,
		Func:    cli.Func,
		Mode:    mode,
	})
	if err != nil {
		log.Fatalf("failed to compile pattern: %v", err)
	}

	if cli.Output == "" {
		src, err := g.Generate()
		if err != nil {
			log.Fatalf("%v", err)
		}
		os.Stdout.Write(src)
		return
	}

	if err := g.Save(cli.Output); err != nil {
		log.Fatalf("%v", err)
	}
}
