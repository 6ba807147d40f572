package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/alexhholmes/bitfield"
	"github.com/alexhholmes/bitfield/internal/analyzer"
	"github.com/alexhholmes/bitfield/internal/codegen"
	"github.com/alexhholmes/bitfield/internal/parser"
)

var errNoInput = errors.New("no input files")

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bitfieldgen"
	app.Usage = "generate accessors for @bitfield record types"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug output, including schema planning",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			return verbose()
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "Write a generated file next to each input",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "suffix",
					Usage: "Suffix replacing .go in generated file names",
					Value: "_bitfield.go",
				},
			},
			Action: func(c *cli.Context) error {
				return generateAll(c.Args(), c.String("suffix"))
			},
		},
		{
			Name:      "describe",
			Usage:     "Print the planned layout of each record type",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				return describeAll(c.App.Writer, c.Args())
			},
		},
	}
	return app
}

func verbose() error {
	log.SetLevel(log.DebugLevel)
	zl, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	bitfield.SetLogger(zl)
	analyzer.SetLogger(zl)
	codegen.SetLogger(zl)
	return nil
}

// generateAll processes every file concurrently. Each failing file is
// reported; files that succeed are still written.
func generateAll(files []string, suffix string) error {
	if len(files) == 0 {
		return errNoInput
	}

	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			errs[i] = generate(path, suffix)
			return errs[i]
		})
	}
	_ = g.Wait()
	return multierr.Combine(errs...)
}

func generate(path, suffix string) error {
	file, layouts, err := load(path)
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		log.WithField("file", path).Warn("No @bitfield types found")
		return nil
	}

	out, err := codegen.GenerateFile(file.Package, path, layouts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	target := codegen.OutputName(path, suffix)
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	log.WithFields(log.Fields{"file": path, "output": target, "types": len(layouts)}).Info("Generated")
	return nil
}

// load parses and analyzes a source file. Analysis errors fail the file.
func load(path string) (*parser.File, []*analyzer.AnalyzedLayout, error) {
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	layouts, err := analyzer.AnalyzeFile(file)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(log.Fields{"file": path, "types": len(layouts), "enums": len(file.Enums)}).Debug("Analyzed")
	return file, layouts, nil
}
