//go:build debug || profile
// +build debug profile

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/restic/fhbackup/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pkg/profile"
)

type ProfileOptions struct {
	listen string
	mem    string
	cpu    string
}

func (opts *ProfileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.listen, "listen-profile", "", "listen on this `address:port` for memory profiling")
	f.StringVar(&opts.mem, "mem-profile", "", "write memory profile to `dir`")
	f.StringVar(&opts.cpu, "cpu-profile", "", "write cpu profile to `dir`")
}

type profiler struct {
	opts ProfileOptions
	stop interface {
		Stop()
	}
}

func (p *profiler) Start() error {
	if p.opts.listen != "" {
		fmt.Fprintf(os.Stderr, "running profile HTTP server on %v\n", p.opts.listen)
		go func() {
			err := http.ListenAndServe(p.opts.listen, nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "profile HTTP server listen failed: %v\n", err)
			}
		}()
	}

	if p.opts.mem != "" && p.opts.cpu != "" {
		return errors.Fatal("only one profile (memory or CPU) may be activated at the same time")
	}

	if p.opts.mem != "" {
		p.stop = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.MemProfile, profile.ProfilePath(p.opts.mem))
	} else if p.opts.cpu != "" {
		p.stop = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.CPUProfile, profile.ProfilePath(p.opts.cpu))
	}

	return nil
}

func (p *profiler) Stop() {
	if p.stop != nil {
		p.stop.Stop()
		p.stop = nil
	}
}

func registerProfiling(cmd *cobra.Command) {
	var prof profiler

	origPreRun := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if origPreRun != nil {
			if err := origPreRun(c, args); err != nil {
				return err
			}
		}
		return prof.Start()
	}

	// also runs if the command failed
	cobra.OnFinalize(prof.Stop)

	prof.opts.AddFlags(cmd.PersistentFlags())
}
