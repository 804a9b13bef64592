package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"

	"bfvm/bf"
)

func compileFile(path string) (*bf.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load %s", path)
	}
	if len(strings.TrimSpace(string(src))) == 0 {
		glog.Warningf("%s is empty", path)
		return nil, nil
	}
	program, err := bf.Compile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot compile %s", path)
	}
	return program, nil
}

func writeAssembly(program *bf.Program, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot open assembler file %s", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	bf.DumpInstructions(program, w, -1)
	return w.Flush()
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.ShowSubcommandHelp(c)
	}
	path := c.Args().First()
	program, err := compileFile(path)
	if err != nil || program == nil {
		return err
	}

	if c.Bool("asm") {
		if err := writeAssembly(program, path+".bfa"); err != nil {
			return err
		}
	}

	input := os.Stdin
	if inputPath := c.String("input"); inputPath != "" {
		input, err = os.Open(inputPath)
		if err != nil {
			return errors.Wrapf(err, "cannot open input file %s", inputPath)
		}
		defer input.Close()
	}
	output := bufio.NewWriter(os.Stdout)
	defer output.Flush()
	env := &bf.Env{Input: bufio.NewReader(input), Output: output}

	if c.Bool("debug") {
		return bf.NewDebugConsole(program, env).Run()
	}

	// Without the interactive console, a breakpoint just shows the
	// tape around the cursor and keeps going.
	ctx := &bf.Context{}
	for {
		err := program.Execute(env, ctx)
		if err != bf.ErrBreakpoint {
			return err
		}
		output.Flush()
		fmt.Fprintf(os.Stderr, "breakpoint: pc=%d, mc=%d\n", ctx.PC, ctx.MC)
		bf.DumpTapeWindow(ctx, os.Stderr)
	}
}

func disasm(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.ShowSubcommandHelp(c)
	}
	program, err := compileFile(c.Args().First())
	if err != nil || program == nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	bf.DumpInstructions(program, w, c.Int("limit"))
	return nil
}

func main() {
	flag.Set("logtostderr", "true")
	flag.CommandLine.Parse(nil)

	app := &cli.App{
		Name:  "bfvm",
		Usage: "Optimizing compiler and virtual machine for brainfuck programs",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Compile and execute a program",
				ArgsUsage: "code.bf",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "asm",
						Aliases: []string{"A"},
						Usage:   "write the instruction dump next to the source as code.bf.bfa",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "read program input from `FILE` instead of stdin",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Aliases: []string{"d"},
						Usage:   "open the interactive console at breakpoints",
					},
				},
				Action: run,
			},
			{
				Name:      "disasm",
				Usage:     "Compile a program and print its instructions",
				ArgsUsage: "code.bf",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   -1,
						Usage:   "print at most `N` instruction words",
					},
				},
				Action: disasm,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		glog.Exitf("%v", err)
	}
}
