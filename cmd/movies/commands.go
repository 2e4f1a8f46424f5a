package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/movies/internal/application"
	"github.com/JonMunkholm/movies/internal/materialize"
	"github.com/JonMunkholm/movies/internal/movie"
)

// ArgError is a bad command-line argument.
type ArgError struct {
	Arg    string
	Reason string
	Usage  string
}

func (e *ArgError) Error() string {
	if e.Arg == "" {
		return e.Reason
	}
	return fmt.Sprintf("file name %q %s", e.Arg, e.Reason)
}

// checkFileArg validates the FILE argument of the query command.
func checkFileArg(args []string, maxLen int, usage string) (string, error) {
	if len(args) != 1 {
		return "", &ArgError{Reason: "expected exactly one CSV file argument", Usage: usage}
	}

	name := args[0]
	switch {
	case name == "":
		return "", &ArgError{Reason: "file name is empty", Usage: usage}
	case utf8.RuneCountInString(name) > maxLen:
		return "", &ArgError{Arg: name, Reason: fmt.Sprintf("exceeds %d characters", maxLen), Usage: usage}
	case strings.ContainsFunc(name, unicode.IsSpace):
		return "", &ArgError{Arg: name, Reason: "contains spaces", Usage: usage}
	}
	return name, nil
}

func (a *app) queryCmd() *cobra.Command {
	const usage = "movies query FILE"

	return &cobra.Command{
		Use:   "query FILE",
		Short: "Load FILE and answer questions about it interactively",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := checkFileArg(args, a.cfg.Files.MaxNameLen, usage)
			if err != nil {
				return err
			}

			s := application.NewSession(a.in, a.out, application.SessionOptions{
				Policy:  a.policy,
				Metrics: a.metrics,
			})
			return s.Run(cmd.Context(), file)
		},
	}
}

func (a *app) organizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize [DIR]",
		Short: "Pick a movie file in DIR and split it into per-year title files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			out := a.cfg.Output
			o := application.NewOrganizer(a.in, a.out, application.OrganizerOptions{
				Dir:    dir,
				Prefix: a.cfg.Files.Prefix,
				Ext:    a.cfg.Files.Ext,
				Policy: a.policy,
				Output: materialize.Options{
					Root:      out.Root,
					OwnerID:   out.OwnerID,
					DirPerm:   out.DirPerm,
					FilePerm:  out.FilePerm,
					SuffixMax: out.SuffixMax,
				},
				Metrics: a.metrics,
			})
			return o.Run(cmd.Context())
		},
	}
}

func (a *app) policiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the registered validation policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range movie.PolicyNames() {
				p, err := movie.PolicyByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, describePolicy(p, p.Name == a.cfg.Loader.Policy && a.cfg.Loader.PolicyFile == ""))
			}
			if a.cfg.Loader.PolicyFile != "" {
				fmt.Fprintln(a.out, describePolicy(a.policy, true)+" (from "+a.cfg.Loader.PolicyFile+")")
			}
			return nil
		},
	}
}

func describePolicy(p movie.Policy, active bool) string {
	mark := " "
	if active {
		mark = "*"
	}
	brackets := "optional"
	if p.RequireBrackets {
		brackets = "required"
	}
	return fmt.Sprintf("%s %-10s years %d-%d, up to %d languages of %d chars, delimiter %q, brackets %s, rating %g-%g, invalid rating: %s",
		mark, p.Name, p.MinYear, p.MaxYear, p.MaxLanguages, p.MaxLanguageLen,
		p.LanguageDelimiter, brackets, p.MinRating, p.MaxRating, p.InvalidRating)
}
