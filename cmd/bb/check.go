package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agilira/orpheus/pkg/orpheus"

	"github.com/bbuild/bb"
)

type checkReport struct {
	Source        string
	Binary        string
	SourceMod     time.Time
	BinaryMod     time.Time
	Stale         bool
	ReferenceTime time.Time
	Inherited     bool
	ModifyAll     bool
}

func loadProjectConfig(path string) (bb.Config, error) {
	if path == "" {
		return bb.DefaultConfig(), nil
	}
	return bb.LoadConfig(path)
}

// checkProject compares a project's build script with its binary the way
// the bootstrap does, without rebuilding anything.
func checkProject(dir string, cfg bb.Config, getenv func(string) (string, bool)) (*checkReport, error) {
	r := &checkReport{
		Source: filepath.Join(dir, cfg.Source),
		Binary: filepath.Join(dir, cfg.Output),
	}
	for _, path := range cfg.SourceFiles() {
		info, err := os.Stat(filepath.Join(dir, path))
		if err != nil {
			return nil, err
		}
		if info.ModTime().After(r.SourceMod) {
			r.SourceMod = info.ModTime()
		}
	}

	bin, err := os.Stat(r.Binary)
	switch {
	case err == nil:
		r.BinaryMod = bin.ModTime()
		r.Stale = bb.Stale(r.SourceMod, r.BinaryMod)
		r.ReferenceTime = r.BinaryMod
	case os.IsNotExist(err):
		r.Stale = true
	default:
		return nil, err
	}

	if v, ok := getenv(cfg.ReferenceTimeEnv()); ok && v != "" {
		t, err := bb.ParseReferenceTime(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.ReferenceTimeEnv(), err)
		}
		r.ReferenceTime = t
		r.Inherited = true
	}
	if v, ok := getenv(cfg.ModifyAllEnv()); ok && v != "" {
		all, err := bb.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.ModifyAllEnv(), err)
		}
		r.ModifyAll = all
	}
	return r, nil
}

func checkCommand(ctx *orpheus.Context) error {
	cfg, err := loadProjectConfig(ctx.GetFlagString("config"))
	if err != nil {
		return orpheus.ExecutionError("check", err.Error())
	}
	r, err := checkProject(ctx.GetFlagString("dir"), cfg, os.LookupEnv)
	if err != nil {
		return orpheus.ExecutionError("check", err.Error())
	}

	fmt.Printf("source:    %s (%s)\n", r.Source, r.SourceMod.Format(time.RFC3339Nano))
	if r.BinaryMod.IsZero() {
		fmt.Printf("binary:    %s (missing)\n", r.Binary)
	} else {
		fmt.Printf("binary:    %s (%s)\n", r.Binary, r.BinaryMod.Format(time.RFC3339Nano))
	}
	if !r.ReferenceTime.IsZero() {
		origin := "binary"
		if r.Inherited {
			origin = "$" + cfg.ReferenceTimeEnv()
		}
		fmt.Printf("reference: %d (from %s)\n", r.ReferenceTime.UnixNano(), origin)
	}
	if r.ModifyAll {
		fmt.Println("modify-all: every file counts as modified")
	}
	if r.Stale {
		fmt.Println("status:    stale, the next run rebuilds")
	} else {
		fmt.Println("status:    up to date")
	}
	return nil
}

func validateCommand(ctx *orpheus.Context) error {
	path := ctx.GetFlagString("config")
	cfg, err := bb.LoadConfig(path)
	if err != nil {
		return orpheus.ExecutionError("validate", err.Error())
	}
	fmt.Printf("%s is valid\n", path)
	fmt.Printf("rebuild: %s\n", cfg.RebuildCommand())
	return nil
}
