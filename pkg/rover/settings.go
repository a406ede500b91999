package rover

import (
	"sync"

	"github.com/metafates/gache"

	"github.com/gwillem/rover/pkg/filesystem"
	"github.com/gwillem/rover/pkg/where"
)

// Settings keys in the persisted store.
const (
	KeyBaseURL   = "baseUrl"
	KeyStreamURL = "streamUrl"
)

// Settings are the values remembered between sessions.
type Settings struct {
	BaseURL   string
	StreamURL string
}

// Store is a durable string key/value store backed by a JSON file.
type Store struct {
	mu    sync.Mutex
	cache *gache.Cache[map[string]string]
}

// OpenStore opens the default settings file.
func OpenStore() *Store {
	return OpenStoreAt(where.Settings())
}

// OpenStoreAt opens a settings file at path on the active filesystem backend.
func OpenStoreAt(path string) *Store {
	return &Store{
		cache: gache.New[map[string]string](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Get returns the value stored under key, or "" when absent.
func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.cache.Set(values)
}

// Load reads both settings. The base URL is returned normalized.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		BaseURL:   NormalizeURL(values[KeyBaseURL]),
		StreamURL: values[KeyStreamURL],
	}, nil
}

// SaveBaseURL normalizes and stores the device address, returning the stored value.
func (s *Store) SaveBaseURL(raw string) (string, error) {
	base := NormalizeURL(raw)
	return base, s.Set(KeyBaseURL, base)
}

// SaveStreamURL stores the camera address.
func (s *Store) SaveStreamURL(u string) error {
	return s.Set(KeyStreamURL, u)
}

func (s *Store) load() (map[string]string, error) {
	values, expired, err := s.cache.Get()
	if err != nil {
		return nil, err
	}
	if expired || values == nil {
		return make(map[string]string), nil
	}
	return values, nil
}
