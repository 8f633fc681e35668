package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ *root }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.out(), "%s version %s", v.program, version)
	if commit != "" {
		fmt.Fprintf(v.out(), " (%s)", commit)
	}
	if date != "" {
		fmt.Fprintf(v.out(), " built %s", date)
	}
	fmt.Fprintln(v.out())
	return nil
}
