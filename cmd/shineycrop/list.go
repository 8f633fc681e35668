package main

import (
	"flag"
	"fmt"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/theme"
)

type ratiosCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *ratiosCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRatiosCmd(args []string, r *root) (*ratiosCmd, error) {
	fs := flag.NewFlagSet("ratios", flag.ExitOnError)
	c := &ratiosCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ratiosCmd) Run() error {
	for i, p := range crop.Presets {
		if p.Ratio.IsFree() {
			fmt.Fprintf(c.out(), "%d\t%s\n", i+1, p.Label)
			continue
		}
		fmt.Fprintf(c.out(), "%d\t%s\t%.4f\n", i+1, p.Label, float64(p.Ratio))
	}
	return nil
}

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	c := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *themesCmd) Run() error {
	if c.fs.NArg() == 0 {
		for _, name := range theme.NewLoader().Names() {
			fmt.Fprintln(c.out(), name)
		}
		return nil
	}
	name := c.fs.Arg(0)
	if c.config != nil {
		if t, ok := c.config.Themes[name]; ok {
			return theme.Encode(c.out(), t)
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		return err
	}
	return theme.Encode(c.out(), t)
}
