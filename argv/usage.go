// File: usage.go
// Title: Usage Text Generation
// Description: Renders help and usage text for the command tree: the
//              synopsis line, the command list in multi-command mode, and
//              the flag and argument summaries.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

package argv

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/msto63/cliscript/schema"
)

// UsageText returns the top-level usage text for the facility's tree
func (f *Facility) UsageText() string {
	if f.tree.MultiCommand() {
		fs := newFlagSet(f.tree.AppName)
		bindOptions(fs, f.tree.RootOptions)
		return f.usageMulti(fs)
	}

	fs := newFlagSet(f.tree.AppName)
	bindOptions(fs, f.tree.RootOptions)
	if f.tree.Default != nil {
		bindOptions(fs, f.tree.Default.Options)
	}
	return f.usageSingle(fs)
}

// usageSingle renders help for single-command mode
func (f *Facility) usageSingle(fs *pflag.FlagSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage: %s [options]", f.tree.AppName)
	var argSpecs []*schema.ArgSpec
	if f.tree.Default != nil {
		argSpecs = f.tree.Default.Args
	}
	for _, arg := range argSpecs {
		b.WriteString(" ")
		b.WriteString(argSynopsis(arg))
	}
	b.WriteString("\n")

	if f.tree.Default != nil && f.tree.Default.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", f.tree.Default.Description)
	}

	writeFlagSection(&b, fs)
	writeArgSection(&b, argSpecs)

	return b.String()
}

// usageMulti renders top-level help for multi-command mode
func (f *Facility) usageMulti(fs *pflag.FlagSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage: %s [options] <command> [command options] [arguments]\n", f.tree.AppName)

	if len(f.tree.Commands) > 0 {
		b.WriteString("\nCommands:\n")
		width := 0
		for _, cmd := range f.tree.Commands {
			if len(cmd.Name) > width {
				width = len(cmd.Name)
			}
		}
		for _, cmd := range f.tree.Commands {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, cmd.Name, cmd.Description)
		}
	}

	writeFlagSection(&b, fs)

	return b.String()
}

// usageCommand renders help for one subcommand scope
func (f *Facility) usageCommand(cmd *schema.CommandSpec, fs *pflag.FlagSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage: %s %s [options]", f.tree.AppName, cmd.Name)
	for _, arg := range cmd.Args {
		b.WriteString(" ")
		b.WriteString(argSynopsis(arg))
	}
	b.WriteString("\n")

	if cmd.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", cmd.Description)
	}

	writeFlagSection(&b, fs)
	writeArgSection(&b, cmd.Args)

	return b.String()
}

// argSynopsis renders one positional argument for the synopsis line
func argSynopsis(arg *schema.ArgSpec) string {
	name := arg.Name
	if arg.Cardinality.Variadic() {
		name += "..."
	}
	switch arg.Cardinality {
	case schema.ExactlyOne, schema.OneOrMore:
		return fmt.Sprintf("<%s>", name)
	default:
		return fmt.Sprintf("[%s]", name)
	}
}

func writeFlagSection(b *strings.Builder, fs *pflag.FlagSet) {
	flagUsages := fs.FlagUsages()
	if strings.TrimSpace(flagUsages) != "" {
		b.WriteString("\nOptions:\n")
		b.WriteString(flagUsages)
	}
}

func writeArgSection(b *strings.Builder, args []*schema.ArgSpec) {
	if len(args) == 0 {
		return
	}
	b.WriteString("\nArguments:\n")
	width := 0
	for _, arg := range args {
		if len(arg.Name) > width {
			width = len(arg.Name)
		}
	}
	for _, arg := range args {
		fmt.Fprintf(b, "  %-*s  %s\n", width, arg.Name, arg.Description)
	}
}
