package config

import (
	"os"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Loader:  LoaderConfig{Policy: "bracketed"},
		Files:   FilesConfig{Prefix: "movies_", Ext: ".csv", MaxNameLen: 49},
		Output:  OutputConfig{OwnerID: "movies", Root: ".", DirPerm: 0o750, FilePerm: 0o640, SuffixMax: 99999},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Loader.Policy != "bracketed" {
		t.Errorf("Loader.Policy = %q, want %q", cfg.Loader.Policy, "bracketed")
	}
	if cfg.Files.Prefix != "movies_" {
		t.Errorf("Files.Prefix = %q, want %q", cfg.Files.Prefix, "movies_")
	}
	if cfg.Files.MaxNameLen != 49 {
		t.Errorf("Files.MaxNameLen = %d, want %d", cfg.Files.MaxNameLen, 49)
	}
	if cfg.Output.DirPerm != 0o750 {
		t.Errorf("Output.DirPerm = %#o, want %#o", cfg.Output.DirPerm, 0o750)
	}
	if cfg.Output.FilePerm != 0o640 {
		t.Errorf("Output.FilePerm = %#o, want %#o", cfg.Output.FilePerm, 0o640)
	}
	if cfg.Output.SuffixMax != 99999 {
		t.Errorf("Output.SuffixMax = %d, want %d", cfg.Output.SuffixMax, 99999)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Metrics.File != "" {
		t.Errorf("Metrics.File = %q, want empty", cfg.Metrics.File)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("MOVIES_POLICY", "plain")
	t.Setenv("MOVIES_OWNER_ID", "clinicke")
	t.Setenv("MOVIES_DIR_PERM", "0700")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Loader.Policy != "plain" {
		t.Errorf("Loader.Policy = %q, want %q", cfg.Loader.Policy, "plain")
	}
	if cfg.Output.OwnerID != "clinicke" {
		t.Errorf("Output.OwnerID = %q, want %q", cfg.Output.OwnerID, "clinicke")
	}
	if cfg.Output.DirPerm != 0o700 {
		t.Errorf("Output.DirPerm = %#o, want %#o", cfg.Output.DirPerm, 0o700)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidOctal(t *testing.T) {
	t.Setenv("MOVIES_FILE_PERM", "0689")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-octal permission")
	}
	if !strings.Contains(err.Error(), "MOVIES_FILE_PERM") {
		t.Errorf("error should mention MOVIES_FILE_PERM: %v", err)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	t.Setenv("MOVIES_SUFFIX_MAX", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for non-numeric MOVIES_SUFFIX_MAX")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Output.OwnerID = "bad owner"
	cfg.Output.DirPerm = os.ModeDir | 0o750
	cfg.Logging.Format = "yaml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"MOVIES_OWNER_ID", "MOVIES_DIR_PERM", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestValidate_FileExt(t *testing.T) {
	cfg := validConfig()
	cfg.Files.Ext = "csv"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for extension without dot")
	}
	if !strings.Contains(err.Error(), "MOVIES_FILE_EXT") {
		t.Errorf("error should mention MOVIES_FILE_EXT: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	for _, want := range []string{`Policy: "bracketed"`, "DirPerm: 0750", "FilePerm: 0640"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, want it to contain %s", str, want)
		}
	}
}
