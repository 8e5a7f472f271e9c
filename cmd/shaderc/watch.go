package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

// settleDelay coalesces the burst of events editors emit for one save.
const settleDelay = 150 * time.Millisecond

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the shader pair whenever either file changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
}

// reloader keeps the last good program current and swaps it only when a
// rebuild succeeds.
type reloader struct {
	p        *shader.Pipeline
	drv      shader.Driver
	vertex   string
	fragment string
	out      *printer
	prog     shader.Program
}

func (r *reloader) rebuild() error {
	prog, err := r.p.Build(r.drv, r.vertex, r.fragment)
	if err != nil {
		r.out.failf("%s + %s: %v", r.vertex, r.fragment, err)
		if r.prog.Handle != 0 {
			r.prog.Use(r.drv)
			r.out.infof("keeping program %d", r.prog.Handle)
		}
		return err
	}
	r.prog.Delete(r.drv)
	r.prog = prog
	r.out.okf("program %d (%s + %s)", prog.Handle, r.vertex, r.fragment)
	return nil
}

func (r *reloader) close() {
	r.prog.Delete(r.drv)
	r.prog = shader.Program{}
}

// watchedFiles returns the cleaned paths l reads for names, keyed for
// matching fsnotify event names, and the directories to watch.
func watchedFiles(l *shader.Loader, names ...string) (files map[string]bool, dirs []string) {
	files = make(map[string]bool, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		path := filepath.Clean(l.Path(name))
		files[path] = true
		if d := filepath.Dir(path); !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return files, dirs
}

// relevant reports whether ev may have changed one of files.
func relevant(ev fsnotify.Event, files map[string]bool) bool {
	if !files[filepath.Clean(ev.Name)] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	ctx, err := opengl.NewContext(s.contextConfig())
	if err != nil {
		return err
	}
	defer ctx.Close()
	drv := ctx.Driver()

	p := s.pipeline(cmd.ErrOrStderr())
	if err := p.CheckInit(drv); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	files, dirs := watchedFiles(p.Loader(), s.cfg.Vertex, s.cfg.Fragment)
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	r := &reloader{p: p, drv: drv, vertex: s.cfg.Vertex, fragment: s.cfg.Fragment, out: out}
	defer r.close()
	// A broken first build is reported and the watch carries on.
	_ = r.rebuild()
	out.infof("watching %s, %s (Ctrl+C to stop)", p.Loader().Path(s.cfg.Vertex), p.Loader().Path(s.cfg.Fragment))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// GL calls stay on this goroutine; fsnotify only delivers events.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	var settle <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevant(ev, files) {
				settle = time.After(settleDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				settle = time.After(settleDelay)
				continue
			}
			return fmt.Errorf("watch: %w", err)
		case <-settle:
			settle = nil
			_ = r.rebuild()
		case <-ticker.C:
			ctx.PollEvents()
		case <-interrupt:
			return nil
		}
	}
}
