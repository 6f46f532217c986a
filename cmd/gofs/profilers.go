package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/pprof"
)

//nolint:containedctx
type cpuProfiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

// newCPUProfiler starts a CPU profile to path, which is written until
// [cpuProfiler.Stop] is called. An empty path does not profile.
func newCPUProfiler(ctx context.Context, path string) *cpuProfiler {
	cprof := &cpuProfiler{}
	cprof.ctx, cprof.cancel = context.WithCancel(ctx)
	cprof.doneChan = make(chan struct{})

	started := make(chan struct{})
	go cprof.profile(path, started)
	<-started

	return cprof
}

func (cprof *cpuProfiler) profile(path string, started chan<- struct{}) {
	defer close(cprof.doneChan)

	if path == "" {
		close(started)

		return
	}

	f, err := os.Create(path)
	if err != nil {
		slog.Error("Could not create cpu profile", "err", err)
		close(started)

		return
	}
	defer f.Close()

	err = pprof.StartCPUProfile(f)
	close(started)
	if err != nil {
		slog.Error("Could not start cpu profile", "err", err)

		return
	}
	defer pprof.StopCPUProfile()

	<-cprof.ctx.Done()
}

func (cprof *cpuProfiler) Stop() {
	cprof.cancel()
	<-cprof.doneChan
}

//nolint:containedctx
type allocProfiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

// newAllocProfiler writes an allocations profile to path once
// [allocProfiler.Stop] is called. An empty path does not profile.
func newAllocProfiler(ctx context.Context, path string) *allocProfiler {
	aprof := &allocProfiler{}
	aprof.ctx, aprof.cancel = context.WithCancel(ctx)
	aprof.doneChan = make(chan struct{})

	go aprof.profile(path)

	return aprof
}

func (aprof *allocProfiler) profile(path string) {
	defer close(aprof.doneChan)

	if path == "" {
		return
	}

	<-aprof.ctx.Done()

	f, err := os.Create(path)
	if err != nil {
		slog.Error("Could not create allocs profile", "err", err)

		return
	}
	defer f.Close()

	if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
		slog.Error("Could not write allocs profile", "err", err)
	}
}

func (aprof *allocProfiler) Stop() {
	aprof.cancel()
	<-aprof.doneChan
}
