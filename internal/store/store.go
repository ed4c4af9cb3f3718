// Package store provides the persistent byte-store capability the controller
// saves its selections into: a handful of addressable byte slots where 0xFF
// means "never written", same as erased EEPROM.
package store

import (
	"fmt"
	"os"
)

// Size is the number of addressable byte slots.
const Size = 16

// Sentinel is the reserved "never written" value. Valid persisted selections
// are all <= 7, so it can never collide with real data.
const Sentinel = 0xFF

// ByteStore is the capability the persistence adapter consumes.
type ByteStore interface {
	ReadByte(addr int) (uint8, error)
	WriteByte(addr int, v uint8) error
}

// FileStore keeps the byte slots in a small fixed-size file. A fresh file is
// created 0xFF-filled so unwritten slots read back as the sentinel.
type FileStore struct {
	path string
	buf  [Size]byte
}

// OpenFile loads the store file at path, creating it if absent. A file of
// unexpected length is rewritten from scratch rather than trusted.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	for i := range s.buf {
		s.buf[i] = Sentinel
	}
	b, err := os.ReadFile(path)
	if err == nil && len(b) == Size {
		copy(s.buf[:], b)
		return s, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	if err := s.flush(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) ReadByte(addr int) (uint8, error) {
	if addr < 0 || addr >= Size {
		return 0, fmt.Errorf("store read: address %d out of range", addr)
	}
	return s.buf[addr], nil
}

// WriteByte updates one slot and synchronously rewrites the backing file.
func (s *FileStore) WriteByte(addr int, v uint8) error {
	if addr < 0 || addr >= Size {
		return fmt.Errorf("store write: address %d out of range", addr)
	}
	s.buf[addr] = v
	return s.flush()
}

func (s *FileStore) flush() error {
	if err := os.WriteFile(s.path, s.buf[:], 0644); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}

// MemStore is an in-memory ByteStore for tests and for running without a
// writable filesystem. Starts 0xFF-filled like a fresh FileStore.
type MemStore struct {
	buf [Size]byte
}

func NewMem() *MemStore {
	s := &MemStore{}
	for i := range s.buf {
		s.buf[i] = Sentinel
	}
	return s
}

func (s *MemStore) ReadByte(addr int) (uint8, error) {
	if addr < 0 || addr >= Size {
		return 0, fmt.Errorf("store read: address %d out of range", addr)
	}
	return s.buf[addr], nil
}

func (s *MemStore) WriteByte(addr int, v uint8) error {
	if addr < 0 || addr >= Size {
		return fmt.Errorf("store write: address %d out of range", addr)
	}
	s.buf[addr] = v
	return nil
}
