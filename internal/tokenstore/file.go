package tokenstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// fileDocument — формат token.json на диске.
type fileDocument struct {
	Token   string    `json:"auth_token,omitempty"`
	Sealed  string    `json:"sealed_token,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// File хранит токен в JSON-файле с правами 0600.
// Если задан секрет, токен запечатывается nacl/secretbox.
type File struct {
	mu   sync.Mutex
	path string
	key  *[32]byte
}

var _ Store = (*File)(nil)

// NewFile создает файловое хранилище. Пустой secret — токен лежит открытым текстом.
func NewFile(path, secret string) *File {
	f := &File{path: path}
	if secret != "" {
		key := sha256.Sum256([]byte(secret))
		f.key = &key
	}
	return f
}

// DefaultFilePath — $XDG_CONFIG_HOME/inventory-console/token.json или ~/.config/...
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "inventory-console", "token.json"), nil
}

// Path возвращает путь к файлу токена.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read token file %s: %w", f.path, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		// Битый файл считаем пустым слотом: следующий Set его перезапишет
		return "", false, nil
	}

	token := doc.Token
	if f.key != nil {
		token = f.open(doc.Sealed)
	}
	return token, token != "", nil
}

func (f *File) Set(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := fileDocument{SavedAt: time.Now().UTC()}
	if f.key != nil {
		sealed, err := f.seal(token)
		if err != nil {
			return err
		}
		doc.Sealed = sealed
	} else {
		doc.Token = token
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	// temp + rename, чтобы читатель не увидел половину файла
	tmp, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file %s: %w", f.path, err)
	}
	return nil
}

func (f *File) seal(token string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(token), &nonce, f.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

// open возвращает "" для всего, что не открывается ключом (чужой секрет, мусор).
func (f *File) open(sealed string) string {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize {
		return ""
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, f.key)
	if !ok {
		return ""
	}
	return string(plain)
}
