package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStore keeps accounts in memory, keyed by email.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]Account)}
}

// FindByEmail looks up an account.
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[email]
	return account, ok, nil
}

// Save upserts an account.
func (s *MemoryStore) Save(_ context.Context, account Account) error {
	s.mu.Lock()
	s.accounts[account.Email] = account
	s.mu.Unlock()
	return nil
}

// FileStore persists accounts as a JSON document on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// FindByEmail reads the document and looks up an account.
func (s *FileStore) FindByEmail(_ context.Context, email string) (Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.read()
	if err != nil {
		return Account{}, false, err
	}
	for _, account := range accounts {
		if account.Email == email {
			return account, true, nil
		}
	}
	return Account{}, false, nil
}

// Save upserts an account and rewrites the document atomically.
func (s *FileStore) Save(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range accounts {
		if accounts[i].Email == account.Email {
			accounts[i] = account
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, account)
	}
	return s.write(accounts)
}

func (s *FileStore) read() ([]Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *FileStore) write(accounts []Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
