package systems

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/quasilyte/gdata"
)

// Store is the key/value backend for saved data. *gdata.Manager satisfies it.
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Volume     float64 `json:"volume"`
	ShowStats  bool    `json:"showStats"`
	Debug      bool    `json:"debug"`
	Difficulty string  `json:"difficulty"`
}

const (
	settingsKey = "settings"
	scoresKey   = "scores"
)

// Persistence saves settings and best scores. A nil *Persistence is valid and
// stores nothing.
type Persistence struct {
	mu    sync.Mutex
	store Store
}

// OpenPersistence initializes the gdata manager for saved data
func OpenPersistence(appName string) (*Persistence, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return nil, err
	}
	return NewPersistence(m), nil
}

func NewPersistence(store Store) *Persistence {
	return &Persistence{store: store}
}

// LoadSettings loads settings from disk. It returns nil when nothing has
// been saved yet.
func (p *Persistence) LoadSettings() (*SavedSettings, error) {
	if p == nil {
		return nil, nil
	}
	var settings SavedSettings
	ok, err := p.load(settingsKey, &settings)
	if err != nil || !ok {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func (p *Persistence) SaveSettings(s *SavedSettings) error {
	if p == nil {
		return nil
	}
	return p.save(settingsKey, s)
}

// BestScore returns the saved best score for a song and difficulty.
func (p *Persistence) BestScore(song, difficulty string) int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scores()[scoreKey(song, difficulty)]
}

// RecordScore keeps score if it beats the saved best.
func (p *Persistence) RecordScore(song, difficulty string, score int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	scores := p.scores()
	key := scoreKey(song, difficulty)
	if best, ok := scores[key]; ok && best >= score {
		return
	}
	scores[key] = score
	_ = p.save(scoresKey, scores)
}

func (p *Persistence) scores() map[string]int {
	scores := map[string]int{}
	if _, err := p.load(scoresKey, &scores); err != nil || scores == nil {
		return map[string]int{}
	}
	return scores
}

func scoreKey(song, difficulty string) string {
	return song + "/" + difficulty
}

func (p *Persistence) load(key string, v any) (bool, error) {
	data, err := p.store.LoadItem(key)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", key, err)
		return false, nil
	}
	if data == nil {
		// Nothing saved yet, use defaults
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: Could not parse saved %s: %v", key, err)
		return false, err
	}
	return true, nil
}

func (p *Persistence) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: Could not serialize %s: %v", key, err)
		return err
	}
	if err := p.store.SaveItem(key, data); err != nil {
		log.Printf("Warning: Could not save %s: %v", key, err)
		return err
	}
	return nil
}
