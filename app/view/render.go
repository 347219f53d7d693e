// Package view renders the HTML pages. Templates are parsed once at
// startup and re-parsed when a file under the template directory
// changes, so edits show up without a restart.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"inkwell/global"

	"github.com/fsnotify/fsnotify"
)

var funcMap = template.FuncMap{
	"gravatar": func(email string) string { return GravatarURL(email, 100) },
	// Post bodies are rich text authored by the admin only; everything
	// else stays escaped.
	"safe": func(s string) template.HTML { return template.HTML(s) },
	"year": func() int { return time.Now().Year() },
}

type Renderer struct {
	dir     string
	mu      sync.RWMutex
	tmpl    *template.Template
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func New(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir, done: make(chan struct{})}
	if err := r.load(); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("template watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	r.watcher = watcher
	go r.watch()
	return r, nil
}

func (r *Renderer) load() error {
	tmpl, err := template.New("").Funcs(funcMap).ParseGlob(filepath.Join(r.dir, "*.html"))
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

func (r *Renderer) watch() {
	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := r.load(); err != nil {
				global.Logger.Error().Err(err).Msg("template reload")
				continue
			}
			global.Logger.Info().Str("file", ev.Name).Msg("templates reloaded")
		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		case <-r.done:
			return
		}
	}
}

// Render writes the named page with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		global.Logger.Error().Err(err).Str("template", name).Msg("render")
	}
}

func (r *Renderer) Close() error {
	close(r.done)
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}
