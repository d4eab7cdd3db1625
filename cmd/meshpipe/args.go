package main

import (
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var negativeNumber = regexp.MustCompile(`^-(\d|\.\d)`)

// hoistPositionals lets positional arguments start with a minus sign, as in
// "translate -1,0,0". When any positional looks like a negative number, all
// positionals are moved behind "--" so pflag does not read them as
// shorthand flags. Flag values are left next to their flags.
func hoistPositionals(root *cobra.Command, args []string) []string {
	cmd, rest, err := root.Find(args)
	if err != nil || cmd == root || !slices.ContainsFunc(rest, negativeNumber.MatchString) {
		return args
	}

	var flags, positionals []string
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		switch {
		case a == "--":
			positionals = append(positionals, rest[i+1:]...)
			i = len(rest)
		case negativeNumber.MatchString(a):
			positionals = append(positionals, a)
		case strings.HasPrefix(a, "-") && len(a) > 1:
			flags = append(flags, a)
			if takesValue(cmd, a) && i+1 < len(rest) {
				i++
				flags = append(flags, rest[i])
			}
		default:
			positionals = append(positionals, a)
		}
	}

	out := commandPath(root, cmd)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positionals...)
}

// commandPath lists the subcommand names leading from root to cmd.
func commandPath(root, cmd *cobra.Command) []string {
	var path []string
	for c := cmd; c != nil && c != root; c = c.Parent() {
		path = append([]string{c.Name()}, path...)
	}
	return path
}

// takesValue reports whether a flag given without "=" consumes the next argument.
func takesValue(cmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.InheritedFlags().Lookup(name)
		}
		return f != nil && f.NoOptDefVal == ""
	}
	if len(arg) != 2 {
		return false
	}
	f := cmd.Flags().ShorthandLookup(arg[1:])
	if f == nil {
		f = cmd.InheritedFlags().ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}
