package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/movies/internal/movie"
)

func sample() movie.Collection {
	return movie.NewCollection([]movie.Record{
		{Title: "The Shawshank Redemption", Year: 1994, Languages: []string{"English"}, Rating: 9.3},
		{Title: "Se7en", Year: 1995, Languages: []string{"English"}, Rating: 8.6},
		{Title: "Pulp Fiction", Year: 1994, Languages: []string{"English", "Spanish", "French"}, Rating: 8.9},
		{Title: "Forrest Gump", Year: 1994, Languages: []string{"English"}, Rating: 9.3},
		{Title: "Amelie", Year: 2001, Languages: []string{"French"}, Rating: 0},
		{Title: "Unrated", Year: 2010, Languages: []string{"english"}, Rating: 0},
	})
}

func TestByYear(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		want      []string
		wantFound bool
	}{
		{"several in source order", 1994, []string{"The Shawshank Redemption", "Pulp Fiction", "Forrest Gump"}, true},
		{"single", 1995, []string{"Se7en"}, true},
		{"none", 1999, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ByYear(sample(), tt.year)
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("titles (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBestPerYear(t *testing.T) {
	want := []YearBest{
		{Year: 1994, Rating: 9.3, Title: "The Shawshank Redemption"},
		{Year: 1995, Rating: 8.6, Title: "Se7en"},
		{Year: 2001, Rating: 0, Title: "Amelie"},
		{Year: 2010, Rating: 0, Title: "Unrated"},
	}
	if diff := cmp.Diff(want, BestPerYear(sample())); diff != "" {
		t.Errorf("BestPerYear (-want +got):\n%s", diff)
	}
}

func TestBestPerYear_LaterHigherRatingReplaces(t *testing.T) {
	c := movie.NewCollection([]movie.Record{
		{Title: "Low", Year: 2000, Rating: 5},
		{Title: "High", Year: 2000, Rating: 7.5},
		{Title: "Also High", Year: 2000, Rating: 7.5},
	})
	want := []YearBest{{Year: 2000, Rating: 7.5, Title: "High"}}
	if diff := cmp.Diff(want, BestPerYear(c)); diff != "" {
		t.Errorf("BestPerYear (-want +got):\n%s", diff)
	}
}

func TestBestPerYear_Empty(t *testing.T) {
	if got := BestPerYear(movie.Collection{}); len(got) != 0 {
		t.Errorf("BestPerYear(empty) = %v, want empty", got)
	}
}

func TestByLanguage(t *testing.T) {
	tests := []struct {
		name      string
		lang      string
		want      []YearTitle
		wantFound bool
	}{
		{
			name: "english",
			lang: "English",
			want: []YearTitle{
				{1994, "The Shawshank Redemption"},
				{1995, "Se7en"},
				{1994, "Pulp Fiction"},
				{1994, "Forrest Gump"},
			},
			wantFound: true,
		},
		{"case sensitive", "english", []YearTitle{{2010, "Unrated"}}, true},
		{"no substring match", "Fren", nil, false},
		{"no trimming", " French", nil, false},
		{"unknown", "Klingon", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ByLanguage(sample(), tt.lang)
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("matches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupTitlesByYear(t *testing.T) {
	want := map[string][]string{
		"1994": {"The Shawshank Redemption", "Pulp Fiction", "Forrest Gump"},
		"1995": {"Se7en"},
		"2001": {"Amelie"},
		"2010": {"Unrated"},
	}
	if diff := cmp.Diff(want, GroupTitlesByYear(sample())); diff != "" {
		t.Errorf("GroupTitlesByYear (-want +got):\n%s", diff)
	}
}

func TestQueriesDoNotMutate(t *testing.T) {
	c := sample()
	before := c.All()

	ByYear(c, 1994)
	BestPerYear(c)
	ByLanguage(c, "English")
	GroupTitlesByYear(c)

	if diff := cmp.Diff(before, c.All()); diff != "" {
		t.Errorf("collection changed (-before +after):\n%s", diff)
	}
}
