// Package secrets resolves the upstream bearer credential at startup and
// keeps it current. The credential is never hard-coded; it comes from the
// environment or from a token file that is watched for rotation.
package secrets

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/logger"
)

// Provider supplies the current bearer token. It satisfies the upstream
// client's TokenSource contract.
type Provider struct {
	mu    sync.RWMutex
	token string

	path          string
	watcher       *fsnotify.Watcher
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// NewStatic returns a provider with a fixed token, for tokens supplied
// directly via the environment.
func NewStatic(token string) *Provider {
	return &Provider{token: token}
}

// NewFromFile returns a provider that reads the token from path and
// reloads it whenever the file changes, so a rotated credential is picked
// up without a restart.
func NewFromFile(path string) (*Provider, error) {
	p := &Provider{
		path:     path,
		stopChan: make(chan struct{}),
	}

	if err := p.reload(); err != nil {
		return nil, err
	}

	if err := p.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to watch token file: %w", err)
	}

	return p, nil
}

// Token returns the current bearer token.
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// reload reads the token file. The file holds the bare token, surrounding
// whitespace ignored.
func (p *Provider) reload() error {
	content, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(content))
	if token == "" {
		return fmt.Errorf("token file %s is empty", p.path)
	}

	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
	return nil
}

// startWatcher begins watching the token file for changes.
func (p *Provider) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	p.watcher = watcher

	if err := watcher.Add(p.path); err != nil {
		_ = watcher.Close()
		return err
	}

	go p.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing; editors often
// emit several events for one save.
func (p *Provider) watchLoop() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				p.debounceReload()
			}

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("token file watcher error", "error", err)

		case <-p.stopChan:
			return
		}
	}
}

func (p *Provider) debounceReload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	p.debounceTimer = time.AfterFunc(250*time.Millisecond, func() {
		if err := p.reload(); err != nil {
			logger.Error("failed to reload rotated token", "path", p.path, "error", err)
			return
		}
		logger.Info("upstream token reloaded", "path", p.path)
	})
}

// Close stops watching the token file.
func (p *Provider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.stopChan)
	return p.watcher.Close()
}
