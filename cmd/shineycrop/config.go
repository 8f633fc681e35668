package main

import (
	"flag"
	"fmt"

	"github.com/example/shineycrop/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	loader := config.NewLoader(version, configPathOverride)
	switch args[0] {
	case "print":
		fmt.Fprint(c.out(), c.config.String())
		return nil
	case "save":
		path := loader.GetConfigPath()
		if path == "" {
			path = loader.SavePath()
		}
		if path == "" {
			return fmt.Errorf("failed to determine config path")
		}
		if err := c.config.Save(path); err != nil {
			return fmt.Errorf("failed to write config %s: %w", path, err)
		}
		fmt.Fprintf(c.errOut(), "Configuration saved to %s\n", path)
		return nil
	case "path":
		if path := loader.GetConfigPath(); path != "" {
			fmt.Fprintln(c.out(), path)
			return nil
		}
		fmt.Fprintf(c.out(), "%s (not present)\n", loader.SavePath())
		return nil
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}
