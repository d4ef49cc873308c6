// Package watcher tails the Entropia Universe chat log. fsnotify drives the
// hot path; a 500ms poll covers filesystems where write events are unreliable
// (network shares, some wine prefixes).
package watcher

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const chatLogName = "chat.log"

// LogWatcher monitors a chat log file for new content
type LogWatcher struct {
	LogPath  string
	offset   int64
	watcher  *fsnotify.Watcher
	done     chan struct{}
	mu       sync.Mutex
	readMu   sync.Mutex
	stopOnce sync.Once

	cleanLogPath string
	onNewLines   func(lines []string, startOffset int64, endOffset int64)
	onError      func(err error)
}

type Config struct {
	OnNewLines func(lines []string, startOffset int64, endOffset int64)
	OnError    func(err error)
}

// New creates a watcher for the given chat log path
func New(logPath string, cfg Config) (*LogWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &LogWatcher{
		LogPath:      logPath,
		watcher:      w,
		done:         make(chan struct{}),
		cleanLogPath: filepath.Clean(logPath),
		onNewLines:   cfg.OnNewLines,
		onError:      cfg.OnError,
	}, nil
}

// Start begins watching for file changes
func (lw *LogWatcher) Start() error {
	slog.Info("watcher starting", "path", lw.LogPath)
	// Watch the directory (more reliable than watching file directly)
	dir := filepath.Dir(lw.LogPath)
	if err := lw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}

	go lw.watchLoop()
	return nil
}

// Stop stops the watcher
func (lw *LogWatcher) Stop() {
	lw.stopOnce.Do(func() {
		slog.Info("watcher stopped", "path", lw.LogPath)
		close(lw.done)
		_ = lw.watcher.Close()
	})
}

// SeekEnd moves the read offset to the current end of file, so only lines
// written after the call are reported. Lines logged before a session starts
// must not count toward it.
func (lw *LogWatcher) SeekEnd() error {
	lw.readMu.Lock()
	defer lw.readMu.Unlock()

	info, err := os.Stat(lw.LogPath)
	if err != nil {
		if os.IsNotExist(err) {
			lw.setOffset(0)
			return nil
		}
		return err
	}
	lw.setOffset(info.Size())
	return nil
}

// SetOffset sets the initial read offset (for resuming)
func (lw *LogWatcher) SetOffset(offset int64) {
	lw.setOffset(offset)
}

func (lw *LogWatcher) setOffset(offset int64) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.offset = offset
}

func (lw *LogWatcher) watchLoop() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-lw.done:
			return
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if filepath.Clean(event.Name) == lw.cleanLogPath {
					if err := lw.readNewContent(); err != nil && lw.onError != nil {
						lw.onError(err)
					}
				}
			}
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			if lw.onError != nil {
				lw.onError(err)
			}
		case <-ticker.C:
			// Periodic poll as fallback
			if err := lw.readNewContent(); err != nil && lw.onError != nil {
				lw.onError(err)
			}
		}
	}
}

func (lw *LogWatcher) readNewContent() error {
	lw.readMu.Lock()
	defer lw.readMu.Unlock()

	f, err := os.Open(lw.LogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()
	// The client truncates the log when the player clears chat history.
	if info.Size() < lw.offset {
		lw.offset = 0
	}
	if info.Size() <= lw.offset {
		return nil // No new content
	}
	startOffset := lw.offset

	if _, err := f.Seek(startOffset, 0 /* io.SeekStart */); err != nil {
		return err
	}

	endOffset := info.Size()
	lw.offset = endOffset

	// Stream lines without loading the entire new content into memory at once.
	lines := make([]string, 0, 512)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) > 0 && lw.onNewLines != nil {
		slog.Debug("new data detected", "path", lw.LogPath, "lines", len(lines))
		lw.onNewLines(lines, startOffset, endOffset)
	}

	return nil
}

// DetectChatLog finds the most recently modified chat.log in the known
// client install locations.
func DetectChatLog() (string, error) {
	var candidates []string
	for _, dir := range logDirectories() {
		path := filepath.Join(dir, chatLogName)
		if _, err := os.Stat(path); err == nil {
			candidates = append(candidates, path)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no chat.log found in known locations")
	}

	sortByModTimeDesc(candidates)
	return candidates[0], nil
}

// sortByModTimeDesc sorts paths newest-first using a single os.Stat per file,
// avoiding repeated stat calls inside the sort comparator.
func sortByModTimeDesc(paths []string) {
	modTimes := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			modTimes[p] = info.ModTime()
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return modTimes[paths[i]].After(modTimes[paths[j]])
	})
}

// logDirectories returns OS-specific Entropia Universe document directories
func logDirectories() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	switch runtime.GOOS {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("USERPROFILE"), "Documents", "Entropia Universe"),
			filepath.Join(home, "Documents", "Entropia Universe"),
		}
	case "linux":
		return []string{
			// Steam Proton prefix
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "compatdata", "1353370", "pfx", "drive_c", "users", "steamuser", "Documents", "Entropia Universe"),
			// Plain wine prefix
			filepath.Join(home, ".wine", "drive_c", "users", os.Getenv("USER"), "Documents", "Entropia Universe"),
		}
	default:
		return []string{}
	}
}
