package storage

import (
	"path"
	"strings"
)

// MemBridge is an in-memory Bridge for tests. It records deletions so tests
// can assert cascade behavior, and can be told to fail deletes for specific
// paths to exercise best-effort cleanup.
type MemBridge struct {
	docs    map[string][]byte
	Deleted []string
	FailDel map[string]error
}

func NewMemBridge() *MemBridge {
	return &MemBridge{docs: make(map[string][]byte)}
}

func (b *MemBridge) ReadDocument(rel string) ([]byte, error) {
	data, ok := b.docs[rel]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (b *MemBridge) WriteDocument(rel string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	b.docs[rel] = cp
	return nil
}

func (b *MemBridge) DeleteDocument(rel string) error {
	b.Deleted = append(b.Deleted, rel)
	if err, ok := b.FailDel[rel]; ok {
		return err
	}
	if _, ok := b.docs[rel]; !ok {
		return ErrNotFound
	}
	delete(b.docs, rel)
	return nil
}

func (b *MemBridge) ListDirectory(rel string) ([]string, error) {
	prefix := strings.TrimSuffix(rel, "/") + "/"
	seen := make(map[string]bool)
	var names []string
	for p := range b.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name := rest
		if i := strings.Index(rest, "/"); i >= 0 {
			name = rest[:i]
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if names == nil {
		return nil, ErrNotFound
	}
	return names, nil
}

func (b *MemBridge) BaseDirectory() string {
	return path.Join("mem", "daybook")
}

// Has reports whether a document exists, for test assertions.
func (b *MemBridge) Has(rel string) bool {
	_, ok := b.docs[rel]
	return ok
}
