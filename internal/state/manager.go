// Package state keeps fingerprints of completed batch jobs so incremental
// runs can skip generate jobs whose inputs have not changed.
package state

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quantmind-br/ado2tf/internal/utils"
)

const StateFileName = ".ado2tf-state.json"

type Manager struct {
	path     string
	state    *RunState
	mu       sync.RWMutex
	dirty    bool
	logger   *utils.Logger
	disabled bool
	seenJobs sync.Map
}

type ManagerOptions struct {
	// Path of the state file; defaults to StateFileName in the working directory
	Path     string
	Manifest string
	Logger   *utils.Logger
	Disabled bool
}

func NewManager(opts ManagerOptions) *Manager {
	path := opts.Path
	if path == "" {
		path = StateFileName
	}
	return &Manager{
		path:     utils.ExpandPath(path),
		logger:   opts.Logger,
		disabled: opts.Disabled,
		state:    NewRunState(opts.Manifest),
	}
}

// DefaultPath places the state file next to the manifest
func DefaultPath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), StateFileName)
}

// Fingerprint hashes the given parts into a hex digest. Parts are length
// prefixed so ("ab","c") and ("a","bc") differ.
func Fingerprint(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (m *Manager) Load(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return ErrStateNotFound
	}
	if err != nil {
		return err
	}

	var loaded RunState
	if err := json.Unmarshal(data, &loaded); err != nil {
		return ErrStateCorrupted
	}

	if loaded.Version != StateVersion {
		if m.logger != nil {
			m.logger.Warn().
				Int("file_version", loaded.Version).
				Int("expected_version", StateVersion).
				Msg("State version mismatch, will rebuild state")
		}
		return ErrVersionMismatch
	}
	if loaded.Jobs == nil {
		loaded.Jobs = make(map[string]JobState)
	}

	m.state = &loaded
	return nil
}

func (m *Manager) Save(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	m.state.LastRun = time.Now()

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(m.path); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return err
	}

	m.dirty = false
	if m.logger != nil {
		m.logger.Debug().
			Int("jobs", len(m.state.Jobs)).
			Str("path", m.path).
			Msg("State saved")
	}
	return nil
}

// ShouldProcess reports whether a job must run: it is unknown, its
// fingerprint changed, or one of its recorded outputs is gone. An empty
// fingerprint always runs.
func (m *Manager) ShouldProcess(name, fingerprint string) bool {
	if m.disabled || fingerprint == "" {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.state.Jobs[name]
	if !exists || job.Fingerprint != fingerprint {
		return true
	}
	for _, out := range job.Outputs {
		if _, err := os.Stat(utils.ExpandPath(out)); err != nil {
			return true
		}
	}
	return false
}

// Job returns the recorded state of a job
func (m *Manager) Job(name string) (JobState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.GetJob(name)
}

func (m *Manager) Update(name string, job JobState) {
	if m.disabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Jobs[name] = job
	m.dirty = true
}

// Forget drops a job so its next run is never skipped
func (m *Manager) Forget(name string) {
	if m.disabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.state.Jobs[name]; ok {
		delete(m.state.Jobs, name)
		m.dirty = true
	}
}

func (m *Manager) MarkSeen(name string) {
	m.seenJobs.Store(name, true)
}

// Prune removes jobs that were not seen in this run, e.g. after they were
// deleted from the manifest, and returns how many were removed.
func (m *Manager) Prune() int {
	if m.disabled {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for name := range m.state.Jobs {
		if _, seen := m.seenJobs.Load(name); !seen {
			delete(m.state.Jobs, name)
			removed++
		}
	}
	if removed > 0 {
		m.dirty = true
	}
	return removed
}

// Stats returns the number of recorded jobs and how many of them went unseen
func (m *Manager) Stats() (total, unseen int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total = len(m.state.Jobs)
	for name := range m.state.Jobs {
		if _, seen := m.seenJobs.Load(name); !seen {
			unseen++
		}
	}
	return total, unseen
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) IsDisabled() bool {
	return m.disabled
}
