package materialize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixed(n int) func(int) int {
	return func(int) int { return n }
}

func TestMaterialize(t *testing.T) {
	root := t.TempDir()
	groups := map[string][]string{
		"1995": {"Se7en"},
		"1994": {"The Shawshank Redemption", "Pulp Fiction"},
	}

	out, err := Materialize(context.Background(), groups, Options{
		Root:      root,
		OwnerID:   "clinicke",
		SuffixMax: DefaultSuffixMax,
		Rand:      fixed(83465),
	})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	wantDir := filepath.Join(root, "clinicke.movies.83465")
	if out.Dir != wantDir {
		t.Errorf("Dir = %q, want %q", out.Dir, wantDir)
	}
	wantFiles := []string{filepath.Join(wantDir, "1994.txt"), filepath.Join(wantDir, "1995.txt")}
	if diff := cmp.Diff(wantFiles, out.Files); diff != "" {
		t.Errorf("Files (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(filepath.Join(wantDir, "1994.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "The Shawshank Redemption\nPulp Fiction\n" {
		t.Errorf("1994.txt = %q", got)
	}
}

func TestMaterialize_Permissions(t *testing.T) {
	out, err := Materialize(context.Background(), map[string][]string{"2000": {"A"}}, Options{
		Root:    t.TempDir(),
		OwnerID: "movies",
		Rand:    fixed(1),
	})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	tests := []struct {
		path string
		want os.FileMode
	}{
		{out.Dir, 0o750},
		{out.Files[0], 0o640},
	}
	for _, tt := range tests {
		info, err := os.Stat(tt.path)
		if err != nil {
			t.Fatal(err)
		}
		if got := info.Mode().Perm(); got != tt.want {
			t.Errorf("%s mode = %#o, want %#o", tt.path, got, tt.want)
		}
	}
}

func TestMaterialize_CustomPermissions(t *testing.T) {
	out, err := Materialize(context.Background(), map[string][]string{"2000": {"A"}}, Options{
		Root:     t.TempDir(),
		OwnerID:  "movies",
		DirPerm:  0o700,
		FilePerm: 0o600,
		Rand:     fixed(2),
	})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	info, err := os.Stat(out.Files[0])
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("file mode = %#o, want 0600", got)
	}
}

func TestMaterialize_ExistingDirIsError(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "movies.movies.7"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := Materialize(context.Background(), map[string][]string{"2000": {"A"}}, Options{
		Root:    root,
		OwnerID: "movies",
		Rand:    fixed(7),
	})
	var me *Error
	if !errors.As(err, &me) || me.Op != "mkdir" {
		t.Fatalf("Materialize() error = %v, want mkdir *Error", err)
	}
	if !errors.Is(err, ErrExists) || !errors.Is(err, os.ErrExist) {
		t.Errorf("error should wrap ErrExists and os.ErrExist: %v", err)
	}
}

func TestMaterialize_SuffixRange(t *testing.T) {
	var gotN int
	_, err := Materialize(context.Background(), nil, Options{
		Root:      t.TempDir(),
		OwnerID:   "movies",
		SuffixMax: 42,
		Rand:      func(n int) int { gotN = n; return n - 1 },
	})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if gotN != 43 {
		t.Errorf("Rand called with %d, want 43", gotN)
	}
}

func TestMaterialize_EmptyGroupsCreatesEmptyDir(t *testing.T) {
	out, err := Materialize(context.Background(), map[string][]string{}, Options{
		Root:    t.TempDir(),
		OwnerID: "movies",
		Rand:    fixed(0),
	})
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	entries, err := os.ReadDir(out.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 || len(out.Files) != 0 {
		t.Errorf("expected empty dir, got %d entries", len(entries))
	}
}

func TestMaterialize_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty owner", Options{}},
		{"owner with slash", Options{OwnerID: "a/b"}},
		{"negative suffix", Options{OwnerID: "movies", SuffixMax: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Root = t.TempDir()
			if _, err := Materialize(context.Background(), nil, tt.opts); err == nil {
				t.Error("Materialize() expected error")
			}
		})
	}
}

func TestMaterialize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Materialize(ctx, map[string][]string{"2000": {"A"}}, Options{
		Root:    t.TempDir(),
		OwnerID: "movies",
		Rand:    fixed(3),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Materialize() error = %v, want context.Canceled", err)
	}
	if len(out.Files) != 0 {
		t.Errorf("Files = %v, want none", out.Files)
	}
}

func TestDirName(t *testing.T) {
	if got := DirName("clinicke", 83465); got != "clinicke.movies.83465" {
		t.Errorf("DirName() = %q", got)
	}
}
