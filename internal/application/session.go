package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/JonMunkholm/movies/internal/logging"
	"github.com/JonMunkholm/movies/internal/metrics"
	"github.com/JonMunkholm/movies/internal/movie"
	"github.com/JonMunkholm/movies/internal/query"
)

// State is where a query session is in its lifecycle.
type State int

const (
	StateAwaitingSource State = iota
	StateAwaitingCommand
	StateExecutingQuery
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingSource:
		return "awaiting-source"
	case StateAwaitingCommand:
		return "awaiting-command"
	case StateExecutingQuery:
		return "executing-query"
	case StateTerminated:
		return "terminated"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// SessionOptions configures a query session.
type SessionOptions struct {
	Policy  movie.Policy     // zero value means movie.Bracketed
	Metrics *metrics.Metrics // optional
}

// Session is the interactive query loop over one movie file.
//
// It loads the file once, then repeatedly shows the menu, reads a choice and
// runs the chosen query until the user quits or input ends.
type Session struct {
	con     *console
	policy  movie.Policy
	metrics *metrics.Metrics

	state   State
	menu    *Menu
	pending MenuItem
	movies  movie.Collection
}

func NewSession(in io.Reader, out io.Writer, opts SessionOptions) *Session {
	s := &Session{
		con:     newConsole(in, out),
		policy:  opts.Policy,
		metrics: opts.Metrics,
		state:   StateAwaitingSource,
	}
	if s.policy.Name == "" {
		s.policy = movie.Bracketed
	}

	s.menu = NewMenu("Choose an option:",
		MenuItem{Label: "Show movies released in the specified year", Action: s.showByYear},
		MenuItem{Label: "Show highest rated movie for each year", Action: s.showBestPerYear},
		MenuItem{Label: "Show the title and year of release of all movies in a specific language", Action: s.showByLanguage},
		MenuItem{Label: "Quit", Action: s.quit},
	)
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Run loads source and drives the menu loop to completion. It returns nil
// when the user quits or input ends, and an error if the file cannot be
// loaded or input cannot be read.
func (s *Session) Run(ctx context.Context, source string) error {
	ctx, _ = logging.NewSession(ctx)
	logger := logging.WithFields(ctx, "source", source)

	for s.state != StateTerminated {
		prev := s.state

		var err error
		switch s.state {
		case StateAwaitingSource:
			err = s.load(ctx, source)
		case StateAwaitingCommand:
			err = s.readCommand()
		case StateExecutingQuery:
			err = s.execute(ctx)
		}

		if errors.Is(err, ErrInputClosed) {
			s.state = StateTerminated
			logger.Debug("input closed")
			break
		}
		if err != nil {
			s.state = StateTerminated
			return err
		}
		if s.state != prev {
			logger.Debug("session state changed", "from", prev.String(), "to", s.state.String())
		}
	}
	return nil
}

func (s *Session) load(ctx context.Context, source string) error {
	start := time.Now()
	res, err := movie.LoadFile(ctx, source,
		movie.WithPolicy(s.policy),
		movie.WithSkipHandler(func(n movie.SkipNotice) {
			s.con.warn("Skipping " + n.String())
		}),
	)
	s.metrics.ObserveLoad(s.policy.Name, res, time.Since(start), err)
	if err != nil {
		return err
	}

	s.movies = res.Records
	s.con.println(fmt.Sprintf("Processed file %s and parsed data for %d movies", source, s.movies.Len()))
	s.state = StateAwaitingCommand
	return nil
}

func (s *Session) readCommand() error {
	s.menu.Render(s.con.out, s.con.st)
	choice, err := s.con.ask(s.menu.Prompt())
	if err != nil {
		return err
	}

	item, ok := s.menu.Lookup(choice)
	if !ok {
		s.con.warn(s.menu.InvalidChoice())
		return nil
	}
	s.pending = item
	s.state = StateExecutingQuery
	return nil
}

func (s *Session) execute(ctx context.Context) error {
	item := s.pending
	s.pending = MenuItem{}

	nav, err := item.Action(ctx)
	if err != nil {
		return err
	}
	if nav == NavExit {
		s.state = StateTerminated
		return nil
	}
	s.state = StateAwaitingCommand
	return nil
}

/* ----------------------------------------
	QUERIES
---------------------------------------- */

func (s *Session) showByYear(ctx context.Context) (Nav, error) {
	input, err := s.con.ask("Enter the year: ")
	if err != nil {
		return NavStay, err
	}

	year, err := strconv.Atoi(input)
	if err != nil || !s.policy.ValidYear(year) {
		s.con.warn(fmt.Sprintf("Invalid year. Please enter a year between %d and %d.", s.policy.MinYear, s.policy.MaxYear))
		return NavStay, nil
	}

	s.metrics.ObserveQuery("by_year")
	titles, found := query.ByYear(s.movies, year)
	if !found {
		s.con.notice(fmt.Sprintf("No data about movies released in the year %d", year))
		return NavStay, nil
	}
	for _, title := range titles {
		s.con.println(title)
	}
	return NavStay, nil
}

func (s *Session) showBestPerYear(ctx context.Context) (Nav, error) {
	s.metrics.ObserveQuery("best_per_year")
	for _, b := range query.BestPerYear(s.movies) {
		s.con.println(fmt.Sprintf("%d %.1f %s", b.Year, b.Rating, b.Title))
	}
	return NavStay, nil
}

func (s *Session) showByLanguage(ctx context.Context) (Nav, error) {
	lang, err := s.con.ask("Enter the language: ")
	if err != nil {
		return NavStay, err
	}
	if utf8.RuneCountInString(lang) > s.policy.MaxLanguageLen {
		s.con.warn(fmt.Sprintf("Language name exceeds %d characters. Please enter a shorter name.", s.policy.MaxLanguageLen))
		return NavStay, nil
	}

	s.metrics.ObserveQuery("by_language")
	matches, found := query.ByLanguage(s.movies, lang)
	if !found {
		s.con.notice("No data about movies released in " + lang)
		return NavStay, nil
	}
	for _, m := range matches {
		s.con.println(fmt.Sprintf("%d %s", m.Year, m.Title))
	}
	return NavStay, nil
}

func (s *Session) quit(context.Context) (Nav, error) {
	s.con.println("Exiting the program.")
	return NavExit, nil
}
