package systems

import (
	"encoding/json"

	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/quasilyte/gdata"
)

const (
	preferencesKey = "preferences"
	recordsKey     = "records"
)

// SavedPreferences is stored on disk between runs.
type SavedPreferences struct {
	Difficulty string `json:"difficulty"`
}

// SavedRecords keeps the fewest cycles a run took, per difficulty code.
type SavedRecords struct {
	Best map[string]int `json:"best"`
}

// itemStore is the subset of gdata.Manager persistence needs.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

var store itemStore

// InitPersistence opens the gdata store for appName. Without it every load
// returns nothing and every save is dropped.
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		logging.Named("persistence").Warnw("could not open store", "error", err)
		return err
	}
	store = m
	return nil
}

func loadItem(key string, v any) (bool, error) {
	if store == nil {
		return false, nil
	}
	data, err := store.LoadItem(key)
	if err != nil {
		logging.Named("persistence").Warnw("could not load item", "key", key, "error", err)
		return false, nil
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		logging.Named("persistence").Warnw("could not parse item", "key", key, "error", err)
		return false, err
	}
	return true, nil
}

func saveItem(key string, v any) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := store.SaveItem(key, data); err != nil {
		logging.Named("persistence").Warnw("could not save item", "key", key, "error", err)
		return err
	}
	return nil
}

// LoadPreferences returns nil when nothing has been saved yet.
func LoadPreferences() (*SavedPreferences, error) {
	var p SavedPreferences
	ok, err := loadItem(preferencesKey, &p)
	if !ok {
		return nil, err
	}
	return &p, nil
}

func SavePreferences(p *SavedPreferences) error {
	return saveItem(preferencesKey, p)
}

// PreferredDifficulty answers a room's DIFF: the saved choice if valid,
// else the configured default, else Normal.
func PreferredDifficulty() netconfig.Difficulty {
	if p, _ := LoadPreferences(); p != nil {
		if d, err := netconfig.ParseDifficulty(p.Difficulty); err == nil {
			return d
		}
	}
	if d, err := netconfig.ParseDifficulty(cfg.Client.Difficulty); err == nil {
		return d
	}
	return netconfig.Normal
}

func LoadRecords() (*SavedRecords, error) {
	r := SavedRecords{Best: map[string]int{}}
	if _, err := loadItem(recordsKey, &r); err != nil {
		return nil, err
	}
	if r.Best == nil {
		r.Best = map[string]int{}
	}
	return &r, nil
}

// RecordRun stores cycles as the best time for d if it beats the previous
// one. It reports whether a new record was set.
func RecordRun(d netconfig.Difficulty, cycles int) (bool, error) {
	r, err := LoadRecords()
	if err != nil {
		return false, err
	}
	if best, ok := r.Best[string(d)]; ok && best <= cycles {
		return false, nil
	}
	r.Best[string(d)] = cycles
	if err := saveItem(recordsKey, r); err != nil {
		return false, err
	}
	return true, nil
}
