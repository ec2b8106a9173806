// Package snapshot persists application state as two independent versioned
// JSON blobs on disk: one for the interview collection, one for wizard
// progress. Loads pass everything through the defaults-merge normalizer, so
// partially shaped or older-version snapshots never crash the application.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/wizard"
)

const (
	// Version tags the on-disk schema. Loading older tags still works:
	// content is normalized regardless of version.
	Version = 1

	interviewsFile = "interviews.json"
	wizardFile     = "wizard.json"

	// MaxAdvisoryBytes is the advisory capacity threshold mirrored from
	// typical browser local-storage limits. Crossing it is a warning, not
	// an error.
	MaxAdvisoryBytes = 5 * 1024 * 1024
)

type interviewsBlob struct {
	Version           int               `json:"version"`
	Interviews        []json.RawMessage `json:"interviews"`
	ActiveInterviewID string            `json:"activeInterviewId"`
}

type wizardBlob struct {
	Version            int                        `json:"version"`
	CurrentInterviewID string                     `json:"currentInterviewId"`
	ByInterview        map[string]wizard.Progress `json:"byInterview"`
}

// Usage reports how much disk the snapshots occupy relative to the
// advisory threshold.
type Usage struct {
	UsedBytes    int64 `json:"usedBytes"`
	UsagePercent int   `json:"usagePercent"`
	Warning      bool  `json:"warning"`
}

// Files reads and writes the snapshot blobs under one directory.
type Files struct {
	dir string
	now func() time.Time
}

// New creates a snapshot file store rooted at dir. now may be nil.
func New(dir string, now func() time.Time) *Files {
	if now == nil {
		now = time.Now
	}
	return &Files{dir: dir, now: now}
}

// writeAtomic writes data via a temp file and rename so a crash mid-write
// never leaves a truncated snapshot behind.
func (f *Files) writeAtomic(name string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	path := filepath.Join(f.dir, name)
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot rename: %w", err)
	}
	return nil
}

// SaveInterviews persists the interview collection and the active pointer.
func (f *Files) SaveInterviews(interviews []*interview.Interview, activeID string) error {
	blob := interviewsBlob{
		Version:           Version,
		Interviews:        make([]json.RawMessage, 0, len(interviews)),
		ActiveInterviewID: activeID,
	}
	for _, iv := range interviews {
		raw, err := json.Marshal(iv)
		if err != nil {
			return fmt.Errorf("snapshot marshal interview %s: %w", iv.ID, err)
		}
		blob.Interviews = append(blob.Interviews, raw)
	}
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	return f.writeAtomic(interviewsFile, data)
}

// LoadInterviews reads the interview snapshot and normalizes every record.
// A missing file returns an empty collection and no error; a corrupt file
// returns whatever records could be repaired.
func (f *Files) LoadInterviews() ([]*interview.Interview, string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, interviewsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("snapshot read: %w", err)
	}

	var blob interviewsBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, "", nil
	}

	now := f.now()
	interviews := make([]*interview.Interview, 0, len(blob.Interviews))
	for _, raw := range blob.Interviews {
		interviews = append(interviews, interview.DecodeInterview(raw, now))
	}
	return interviews, blob.ActiveInterviewID, nil
}

// SaveWizard persists wizard progress alongside, but independent of, the
// interview snapshot.
func (f *Files) SaveWizard(currentID string, byInterview map[string]wizard.Progress) error {
	blob := wizardBlob{
		Version:            Version,
		CurrentInterviewID: currentID,
		ByInterview:        byInterview,
	}
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot marshal wizard: %w", err)
	}
	return f.writeAtomic(wizardFile, data)
}

// LoadWizard reads the wizard snapshot. Missing or corrupt files yield
// empty state.
func (f *Files) LoadWizard() (string, map[string]wizard.Progress, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, wizardFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", map[string]wizard.Progress{}, nil
		}
		return "", nil, fmt.Errorf("snapshot read wizard: %w", err)
	}

	var blob wizardBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return "", map[string]wizard.Progress{}, nil
	}
	if blob.ByInterview == nil {
		blob.ByInterview = map[string]wizard.Progress{}
	}
	return blob.CurrentInterviewID, blob.ByInterview, nil
}

// Usage sums the snapshot file sizes against the advisory threshold.
func (f *Files) Usage() Usage {
	var used int64
	for _, name := range []string{interviewsFile, wizardFile} {
		if info, err := os.Stat(filepath.Join(f.dir, name)); err == nil {
			used += info.Size()
		}
	}
	percent := int(used * 100 / MaxAdvisoryBytes)
	return Usage{
		UsedBytes:    used,
		UsagePercent: percent,
		Warning:      percent >= 80,
	}
}
