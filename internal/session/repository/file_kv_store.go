package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// errCorruptFile marks a session file that exists but cannot be decoded.
var errCorruptFile = errors.New("failed to decode session file")

// fileDocument maps profile -> key -> value. []byte values are base64 encoded by encoding/json.
type fileDocument map[string]map[string][]byte

// FileKVStore persists every profile in one JSON document that is replaced atomically on
// each write, so a crash leaves either the previous or the next document on disk.
type FileKVStore struct {
	mu      sync.Mutex
	path    string
	profile string
}

// NewFileKVStore creates a file-backed store. The parent directory is created on first write.
func NewFileKVStore(path, profile string) *FileKVStore {
	return &FileKVStore{path: path, profile: profile}
}

func (f *FileKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}

	values := doc[f.profile]
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := values[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

func (f *FileKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	switch {
	case errors.Is(err, errCorruptFile) && rewritesSession(batch):
		// Nothing in an undecodable document can be kept, so a logout or a fresh login
		// replaces it instead of failing forever.
		doc = fileDocument{}
	case err != nil:
		return err
	}

	values := doc[f.profile]
	if values == nil {
		values = make(map[string][]byte)
	}
	for _, key := range batch.Deletes {
		delete(values, key)
	}
	for key, value := range batch.Puts {
		values[key] = value
	}
	if len(values) == 0 {
		delete(doc, f.profile)
	} else {
		doc[f.profile] = values
	}

	return f.write(doc)
}

func (f *FileKVStore) Close() error {
	return nil
}

func (f *FileKVStore) read() (fileDocument, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return fileDocument{}, nil
	}

	doc := fileDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptFile, err)
	}
	return doc, nil
}

func (f *FileKVStore) write(doc fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(f.path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("failed to create pending session file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
