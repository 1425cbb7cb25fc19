// Package settings persists the slideshow configuration as key-value data in
// a BoltDB file. The playback core never touches this package directly: it
// receives the values at construction and reports changes through callbacks,
// and the owner writes them back here.
package settings

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName     = "leafslide_settings.db"
	settingsBucket = "Settings"
)

// Keys under which each setting is stored. They mirror the fields of Settings.
const (
	KeyLooping         = "is_looping"
	KeyIntervalSeconds = "interval_seconds"
	KeyFilterPattern   = "regex_pattern"
	KeySkipFirstImage  = "skip_first_image"
	KeyUnmatchedPolicy = "handle_unmatched"
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// Settings holds everything the slideshow remembers between runs.
type Settings struct {
	Looping         bool
	IntervalSeconds int
	FilterPattern   string
	SkipFirstImage  bool
	UnmatchedPolicy string
}

// Defaults returns the settings used when nothing has been persisted yet.
func Defaults() Settings {
	return Settings{
		Looping:         true,
		IntervalSeconds: 8,
		UnmatchedPolicy: "show_all",
	}
}

// Store reads and writes Settings in a BoltDB file.
type Store struct {
	db     *bolt.DB
	logger LoggerFunc
}

// Open creates or opens the settings database. dbDir specifies the directory
// for the db file; empty means the user config directory (falling back to the
// current directory when that is unavailable).
func Open(dbDir string, logger LoggerFunc) (*Store, error) {
	if dbDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: Could not get user config dir: %v. Using current dir.", err)
			dbDir = "."
		} else {
			appConfigDir := filepath.Join(configDir, "leafslide")
			if err := os.MkdirAll(appConfigDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create config directory %s: %w", appConfigDir, err)
			}
			dbDir = appConfigDir
		}
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	if logger != nil {
		logger(fmt.Sprintf("Using settings database at: %s", dbPath))
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", settingsBucket, err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the persisted settings. Missing or unreadable keys keep their
// default; a damaged value never prevents startup.
func (s *Store) Load() (Settings, error) {
	out := Defaults()
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(settingsBucket))
		if b == nil {
			return nil
		}
		s.getJSON(b, KeyLooping, &out.Looping)
		s.getJSON(b, KeyIntervalSeconds, &out.IntervalSeconds)
		s.getJSON(b, KeyFilterPattern, &out.FilterPattern)
		s.getJSON(b, KeySkipFirstImage, &out.SkipFirstImage)
		s.getJSON(b, KeyUnmatchedPolicy, &out.UnmatchedPolicy)
		return nil
	})
	if out.IntervalSeconds <= 0 {
		out.IntervalSeconds = Defaults().IntervalSeconds
	}
	return out, err
}

// Save writes every setting.
func (s *Store) Save(v Settings) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(settingsBucket))
		if err := putJSON(b, KeyLooping, v.Looping); err != nil {
			return err
		}
		if err := putJSON(b, KeyIntervalSeconds, v.IntervalSeconds); err != nil {
			return err
		}
		if err := putJSON(b, KeyFilterPattern, v.FilterPattern); err != nil {
			return err
		}
		if err := putJSON(b, KeySkipFirstImage, v.SkipFirstImage); err != nil {
			return err
		}
		return putJSON(b, KeyUnmatchedPolicy, v.UnmatchedPolicy)
	})
}

// SetKey writes one setting by its key name, parsing the value from its JSON
// form ("true", "8", "\"pattern\"" or bare text for string keys).
func (s *Store) SetKey(key, value string) error {
	var encoded []byte
	switch key {
	case KeyLooping, KeySkipFirstImage:
		var b bool
		if err := json.Unmarshal([]byte(value), &b); err != nil {
			return fmt.Errorf("value for %s must be true or false: %w", key, err)
		}
		encoded, _ = json.Marshal(b)
	case KeyIntervalSeconds:
		var n int
		if err := json.Unmarshal([]byte(value), &n); err != nil {
			return fmt.Errorf("value for %s must be an integer: %w", key, err)
		}
		if n <= 0 {
			return fmt.Errorf("value for %s must be positive", key)
		}
		encoded, _ = json.Marshal(n)
	case KeyFilterPattern, KeyUnmatchedPolicy:
		encoded, _ = json.Marshal(value)
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(key), encoded)
	})
}

func (s *Store) getJSON(b *bolt.Bucket, key string, out any) {
	raw := b.Get([]byte(key))
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil && s.logger != nil {
		s.logger(fmt.Sprintf("ignoring damaged setting %s: %v", key, err))
	}
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), raw)
}
