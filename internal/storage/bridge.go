package storage

import "errors"

// ErrNotFound is returned by a Bridge when a document is absent. Callers
// treat absence as "use the empty default", never as a failure.
var ErrNotFound = errors.New("document not found")

// Bridge is the file-access collaborator every store goes through. Paths are
// relative to the base directory; the bridge owns resolution. Swapping in
// MemBridge keeps store tests off the disk.
type Bridge interface {
	ReadDocument(rel string) ([]byte, error)
	WriteDocument(rel string, data []byte) error
	DeleteDocument(rel string) error
	ListDirectory(rel string) ([]string, error)
	BaseDirectory() string
}
