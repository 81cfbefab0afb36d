package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

// AppName is the gdata application directory.
const AppName = "slideanim"

const resumeObject = "resume"

// propStore is the part of *gdata.Manager the resume store uses.
type propStore interface {
	ObjectPropExists(object, prop string) bool
	LoadObjectProp(object, prop string) ([]byte, error)
	SaveObjectProp(object, prop string, data []byte) error
}

// ResumeStore remembers the last viewed step of each presentation. A store
// without a backend keeps nothing.
type ResumeStore struct {
	data propStore
}

// OpenResumeStore opens the per-user data directory.
func OpenResumeStore() (*ResumeStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return &ResumeStore{}, fmt.Errorf("open resume store: %w", err)
	}
	return &ResumeStore{data: m}, nil
}

// resumeKey turns a presentation name into a property name.
func resumeKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

// Load returns the saved step of a presentation.
func (s *ResumeStore) Load(name string) (int, bool, error) {
	key := resumeKey(name)
	if s.data == nil || !s.data.ObjectPropExists(resumeObject, key) {
		return 0, false, nil
	}
	raw, err := s.data.LoadObjectProp(resumeObject, key)
	if err != nil {
		return 0, false, fmt.Errorf("load resume %s: %w", key, err)
	}
	step, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, false, fmt.Errorf("parse resume %s: %w", key, err)
	}
	return step, true, nil
}

// Save records step for a presentation.
func (s *ResumeStore) Save(name string, step int) error {
	if s.data == nil {
		return nil
	}
	key := resumeKey(name)
	if err := s.data.SaveObjectProp(resumeObject, key, []byte(strconv.Itoa(step))); err != nil {
		return fmt.Errorf("save resume %s: %w", key, err)
	}
	return nil
}
