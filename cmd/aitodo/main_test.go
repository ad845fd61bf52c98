package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"aitodo": run,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			home := filepath.Join(env.WorkDir, "home")
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			env.Setenv("HOME", home)
			env.Setenv("AITODO_CONFIG", filepath.Join(env.WorkDir, "aitodo.toml"))
			env.Setenv("AITODO_STORAGE_DRIVER", "sqlite")
			env.Setenv("AITODO_LOG_FILE", filepath.Join(env.WorkDir, "aitodo.log"))
			return nil
		},
	})
}
