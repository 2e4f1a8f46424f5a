package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/movies/internal/logging"
	"github.com/JonMunkholm/movies/internal/materialize"
	"github.com/JonMunkholm/movies/internal/metrics"
	"github.com/JonMunkholm/movies/internal/movie"
	"github.com/JonMunkholm/movies/internal/query"
	"github.com/JonMunkholm/movies/internal/scan"
)

// OrganizerOptions configures an Organizer.
type OrganizerOptions struct {
	Dir     string // directory scanned for movie files; "" means "."
	Prefix  string
	Ext     string
	Policy  movie.Policy
	Output  materialize.Options
	Metrics *metrics.Metrics
}

// Organizer lets the user pick a movie file and splits it into one text file
// of titles per release year.
type Organizer struct {
	con  *console
	opts OrganizerOptions
}

func NewOrganizer(in io.Reader, out io.Writer, opts OrganizerOptions) *Organizer {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Policy.Name == "" {
		opts.Policy = movie.Bracketed
	}
	return &Organizer{con: newConsole(in, out), opts: opts}
}

// Run shows the main menu until the user exits or input ends.
func (o *Organizer) Run(ctx context.Context) error {
	ctx, _ = logging.NewSession(ctx)

	files := NewMenu("Which file you want to process?",
		MenuItem{Label: "Pick the largest file", Action: o.pickBy(scan.Largest)},
		MenuItem{Label: "Pick the smallest file", Action: o.pickBy(scan.Smallest)},
		MenuItem{Label: "Specify the name of a file", Action: o.pickByName},
	)
	root := NewMenu("Main menu",
		MenuItem{Label: "Select file to process", Submenu: files},
		MenuItem{Label: "Exit the program", Action: o.exit},
	)

	err := runMenu(ctx, o.con, root)
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}

func (o *Organizer) pickBy(choose func([]scan.Candidate) (scan.Candidate, bool)) func(context.Context) (Nav, error) {
	return func(ctx context.Context) (Nav, error) {
		cands, err := scan.Candidates(o.opts.Dir, o.opts.Prefix, o.opts.Ext)
		if err != nil {
			o.con.fail(fmt.Sprintf("Could not read directory %s: %v", o.opts.Dir, err))
			return NavBack, nil
		}

		c, ok := choose(cands)
		if !ok {
			o.con.warn("No files matching the criteria were found.")
			return NavStay, nil
		}
		o.process(ctx, c.Path, c.Name)
		return NavBack, nil
	}
}

func (o *Organizer) pickByName(ctx context.Context) (Nav, error) {
	name, err := o.con.ask("Enter the complete file name: ")
	if err != nil {
		return NavStay, err
	}

	path := filepath.Join(o.opts.Dir, name)
	if name == "" || !scan.Exists(path) {
		o.con.warn(fmt.Sprintf("The file %s was not found. Try again", name))
		return NavStay, nil
	}
	o.process(ctx, path, name)
	return NavBack, nil
}

// process loads one file and materializes it. Failures are reported to the
// user and abort only this action.
func (o *Organizer) process(ctx context.Context, path, name string) {
	logger := logging.WithFields(ctx, "file", path)
	o.con.println("Now processing the chosen file named " + name)

	start := time.Now()
	res, err := movie.LoadFile(ctx, path, movie.WithPolicy(o.opts.Policy))
	o.opts.Metrics.ObserveLoad(o.opts.Policy.Name, res, time.Since(start), err)
	if err != nil {
		logger.Warn("load failed", "error", err)
		o.con.fail("Error processing file: " + FormatUserError(err))
		return
	}

	out, err := materialize.Materialize(ctx, query.GroupTitlesByYear(res.Records), o.opts.Output)
	o.opts.Metrics.ObserveMaterialized(len(out.Files))
	if err != nil {
		logger.Warn("materialize failed", "error", err)
		o.con.fail("Error processing file: " + FormatUserError(err))
		return
	}

	o.con.println("Created directory with name " + out.Dir)
}

func (o *Organizer) exit(context.Context) (Nav, error) {
	o.con.println("Exiting the program.")
	return NavExit, nil
}
