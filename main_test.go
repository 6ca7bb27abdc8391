package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"concord/colors"
	"concord/driver"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestFiles(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	testDir := filepath.Join(cwd, "tests")

	entries, err := os.ReadDir(testDir)
	if err != nil {
		panic(err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".concord" {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			path := filepath.Join(testDir, entry.Name())
			source, err := os.ReadFile(path)
			if err != nil {
				panic(err)
			}

			var buf bytes.Buffer
			colors.WithoutColor(func() {
				result := driver.Check(entry.Name(), string(source))
				result.Write(&buf)
			})

			snaps.WithConfig(snaps.Dir(filepath.Join(testDir, "__snapshots__")), snaps.Filename(entry.Name())).MatchStandaloneSnapshot(t, buf.String())
		})
	}
}
