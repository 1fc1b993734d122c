// Package workspace holds the open documents and the filesystem
// collaborators the feature handlers depend on.
package workspace

import (
	"sync"
)

// Store maps document URIs to their current full text
type Store struct {
	documents map[string]string
	mu        sync.RWMutex
}

// NewStore creates an empty document store
func NewStore() *Store {
	return &Store{
		documents: make(map[string]string),
	}
}

// Open records a newly opened document
func (s *Store) Open(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = text
}

// Update replaces the text of a document. Unknown documents are added.
func (s *Store) Update(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = text
}

// Close forgets a document
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, uri)
}

// Get returns the current text of a document
func (s *Store) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.documents[uri]
	return text, ok
}

// Len returns the number of open documents
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
