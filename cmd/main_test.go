package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitReader_LoadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SCOREBOARD_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("SCOREBOARD_TEST_VALUE", "")
	os.Unsetenv("SCOREBOARD_TEST_VALUE")

	InitReader()

	if got := os.Getenv("SCOREBOARD_TEST_VALUE"); got != "from-file" {
		t.Errorf("SCOREBOARD_TEST_VALUE = %q, want from-file", got)
	}
}

func TestInitReader_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	InitReader()
}

func TestRun_Wiring(t *testing.T) {
	t.Skip("run is wiring-only and needs a live postgres; its parts are covered in internal packages")
}
