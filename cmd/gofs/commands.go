package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/desertwitch/gofs"
	"github.com/desertwitch/gofs/internal/configuration"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var errInvalidMode = errors.New("invalid mode")

func (a *app) findCmd() *cobra.Command {
	var (
		names    []string
		typ      string
		allNames bool
		anyNames bool
		follow   bool
		strict   bool
		long     bool
		limit    int
		browse   bool
	)

	cmd := &cobra.Command{
		Use:   "find <root>...",
		Short: "Recursively search one or more directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			finder := a.fsys.Find().In(args...).Name(names...)

			switch typ {
			case "":
			case "f", "file":
				finder.Files()
			case "d", "dir":
				finder.Directories()
			default:
				return fmt.Errorf("invalid type %q (expected f or d)", typ)
			}

			if allNames || (!anyNames && a.config.NameMatch == configuration.NameMatchAll) {
				finder.MatchAllNames()
			}
			if follow || a.config.FollowLinks {
				finder.FollowLinks()
			}
			if strict {
				finder.Strict()
			}

			seq, err := finder.Find()
			if err != nil {
				return err
			}

			if browse {
				return a.browse(cmd.Context(), strings.Join(args, ", "), seq, long)
			}

			count := 0
			for m := range seq.All() {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				if long {
					a.printLong(m)
				} else {
					fmt.Fprintln(a.stdout, m.Path)
				}

				count++
				if limit > 0 && count >= limit {
					break
				}
			}

			return seq.Err()
		},
	}

	cmd.Flags().StringArrayVarP(&names, "name", "n", nil, "basename glob pattern (repeatable)")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "restrict to files (f) or directories (d)")
	cmd.Flags().BoolVar(&allNames, "all-names", false, "require all name patterns to match")
	cmd.Flags().BoolVar(&anyNames, "any-names", false, "require any name pattern to match")
	cmd.Flags().BoolVarP(&follow, "follow", "L", false, "follow symbolic links to directories")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unreadable directories")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "print type and size")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many results")
	cmd.Flags().BoolVarP(&browse, "interactive", "i", false, "browse the results interactively")
	cmd.MarkFlagsMutuallyExclusive("all-names", "any-names")

	return cmd
}

func (a *app) printLong(m gofs.Match) {
	fmt.Fprintln(a.stdout, a.describeLong(m))
}

func (a *app) describeLong(m gofs.Match) string {
	size := "-"

	if m.Type == gofs.TypeFile {
		if n, err := a.fsys.File(m.Path).Size(); err == nil {
			size = humanize.IBytes(n)
		}
	}

	return fmt.Sprintf("%-5s %10s  %s", m.Type, size, m.Path)
}

func (a *app) statCmd() *cobra.Command {
	var (
		asYAML   bool
		withHash bool
	)

	cmd := &cobra.Command{
		Use:   "stat <path>",
		Short: "Show metadata of a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			report, err := a.statReport(args[0], withHash)
			if err != nil {
				return err
			}

			if asYAML {
				return writeYAML(a.stdout, report)
			}

			writeReport(a.stdout, report)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as YAML")
	cmd.Flags().BoolVar(&withHash, "hash", false, "include the content hash of files")

	return cmd
}

func (a *app) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>...",
		Short: "Print the BLAKE3 hash of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				sum, err := a.fsys.Hash(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%s  %s\n", sum, path)
			}

			return nil
		},
	}
}

func (a *app) sizeCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "size <path>",
		Short: "Print the size of a file or the total size of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			size, err := a.fsys.Size(args[0])
			if err != nil {
				return err
			}

			if raw {
				fmt.Fprintln(a.stdout, size)
			} else {
				fmt.Fprintln(a.stdout, humanize.IBytes(size))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&raw, "bytes", "b", false, "print the size in bytes")

	return cmd
}

func (a *app) putCmd() *cobra.Command {
	var (
		appendData  bool
		prependData bool
	)

	cmd := &cobra.Command{
		Use:   "put <file> [content]",
		Short: "Write content (or standard input) to a file",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			var data []byte

			if len(args) == 2 { //nolint:mnd
				data = []byte(args[1])
			} else {
				stdin, err := io.ReadAll(a.stdin)
				if err != nil {
					return fmt.Errorf("failed to read standard input: %w", err)
				}
				data = stdin
			}

			var (
				n   int
				err error
			)

			switch {
			case appendData:
				n, err = a.fsys.Append(args[0], data)
			case prependData:
				n, err = a.fsys.Prepend(args[0], data)
			default:
				n, err = a.fsys.Put(args[0], data)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(a.stdout, n)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&appendData, "append", "a", false, "append instead of overwriting (prints bytes appended)")
	cmd.Flags().BoolVarP(&prependData, "prepend", "p", false, "prepend instead of overwriting (prints new total size)")
	cmd.MarkFlagsMutuallyExclusive("append", "prepend")

	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file>",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := a.fsys.Get(args[0])
			if err != nil {
				return err
			}

			_, err = a.stdout.Write(data)

			return err
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files and directories (recursively)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := a.fsys.Delete(args...)

			return err
		},
	}
}

func (a *app) cpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cp <src> <dest>",
		Short: "Copy a file or directory (verified)",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := a.fsys.Copy(args[0], args[1])

			return err
		},
	}
}

func (a *app) mvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <src> <dest>",
		Short: "Move a file or directory",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := a.fsys.Move(args[0], args[1])

			return err
		},
	}
}

func (a *app) chmodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chmod <path> [mode]",
		Short: "Print or set (printing the previous) permissions",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			var modes []os.FileMode

			if len(args) == 2 { //nolint:mnd
				mode, err := parseMode(args[1])
				if err != nil {
					return err
				}
				modes = append(modes, mode)
			}

			mode, err := a.fsys.Chmod(args[0], modes...)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "%#o\n", mode)

			return nil
		},
	}
}

func (a *app) mkdirCmd() *cobra.Command {
	var (
		parents bool
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "mkdir <dir>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var perm os.FileMode

			if mode != "" {
				parsed, err := parseMode(mode)
				if err != nil {
					return err
				}
				perm = parsed
			}

			created, err := a.fsys.Directory(args[0]).Create(perm, parents)
			if err != nil {
				return err
			}

			if !created {
				slog.Info("Directory already exists", "path", args[0])
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parent directories")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "octal mode (default from configuration)")

	return cmd
}

func (a *app) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <dir>",
		Short: "Remove all content of a directory, keeping the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.fsys.Directory(args[0]).Clean()
		},
	}
}

func (a *app) touchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <file>...",
		Short: "Update timestamps of files, creating them if needed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				if err := a.fsys.File(path).Touch(); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func (a *app) macroCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "macro <name> [arg]...",
		Short: "Call a registered macro",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			macroArgs := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				macroArgs = append(macroArgs, arg)
			}

			res, err := a.fsys.Call(args[0], macroArgs...)
			if err != nil {
				return err
			}

			switch v := res.(type) {
			case string, int, int64, uint64, bool:
				fmt.Fprintln(a.stdout, v)

				return nil
			default:
				return writeYAML(a.stdout, v)
			}
		},
	}
}

func (a *app) macrosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "macros",
		Short: "List the registered macros",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range a.fsys.Macros() {
				fmt.Fprintln(a.stdout, name)
			}

			return nil
		},
	}
}

func parseMode(s string) (os.FileMode, error) {
	value := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")

	//nolint:mnd
	mode, err := strconv.ParseUint(value, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, fmt.Errorf("%w: %s", errInvalidMode, s)
	}

	return os.FileMode(mode), nil
}
