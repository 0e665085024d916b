// Copyright 2013 David G. Andersen.  All rights reserved.
// Use of this source code is goverened by a BSD-style
// license that can be found in the Go source code distribution
// LICENSE file.

// Package digitstore packs a computed π digit string into the same
// 4-bit binary-coded-decimal layout the original pisearch package used
// for a precomputed digit file, and serves substring search over it —
// either straight out of memory right after piengine.ComputePi
// returns, or reopened later from the two files Save wrote, mmap'd for
// zero-copy random access the way pisearch.Open did.
//
// ComputePi itself never touches a filesystem; digitstore is a
// caller-side collaborator that persists and searches its output.
package digitstore

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"syscall"
)

// seqThresh mirrors pisearch's dispatch threshold: search strings at
// or below this length use a linear scan; longer ones use the sorted
// suffix index.
const seqThresh = 4

// Store holds BCD-packed decimal digits (two digits per byte, the
// first digit in the high nibble) together with a sorted index of
// start positions, enabling binary-search substring lookups the way
// pisearch did over its precomputed suffix array.
type Store struct {
	digits    []byte // BCD-packed, owned or mmap'd
	numDigits int
	index     []int32 // positions 0..numDigits-1, sorted by the digit suffix starting there

	file    *os.File // set only when opened from disk
	fileMap []byte
	idxFile *os.File
	idxMap  []byte
}

// Build BCD-packs the fractional digits of a decimal string produced
// by piengine.ComputePi (the "3." prefix is stripped) and constructs
// an in-memory sorted suffix index over them, ready for Search without
// ever touching disk.
func Build(decimal string) (*Store, error) {
	if len(decimal) < 2 || decimal[0] != '3' || decimal[1] != '.' {
		return nil, fmt.Errorf("digitstore: expected a \"3.<digits>\" decimal string")
	}
	digits := decimal[2:]
	packed := pack(digits)
	s := &Store{digits: packed, numDigits: len(digits)}
	s.buildIndex()
	return s, nil
}

// pack converts an ASCII decimal digit string into BCD nibbles, per
// the original pipack tool's convention: the leftmost digit of each
// pair occupies the high nibble of the byte.
func pack(ascii string) []byte {
	out := make([]byte, (len(ascii)+1)/2)
	for i, c := range []byte(ascii) {
		nibble := c - '0'
		if i&1 == 0 {
			out[i/2] = nibble << 4
		} else {
			out[i/2] |= nibble
		}
	}
	return out
}

// unpackDigit is pack's inverse for a single digit, used by GetDigits.
func unpackDigit(b byte, low bool) byte {
	if low {
		return (b & 0x0f) + '0'
	}
	return (b >> 4) + '0'
}

func (s *Store) buildIndex() {
	s.index = make([]int32, s.numDigits)
	for i := range s.index {
		s.index[i] = int32(i)
	}
	sort.Slice(s.index, func(i, j int) bool {
		return s.compareSuffixes(int(s.index[i]), int(s.index[j])) < 0
	})
}

func (s *Store) compareSuffixes(a, b int) int {
	for a < s.numDigits && b < s.numDigits {
		da, db := s.digitAt(a), s.digitAt(b)
		if da != db {
			if da < db {
				return -1
			}
			return 1
		}
		a++
		b++
	}
	switch {
	case a < s.numDigits:
		return 1
	case b < s.numDigits:
		return -1
	default:
		return 0
	}
}

// NumDigits returns the count of stored fractional digits.
func (s *Store) NumDigits() int {
	return s.numDigits
}

func (s *Store) digitAt(pos int) byte {
	b := s.digits[pos/2]
	if pos&1 == 1 {
		return b & 0x0f
	}
	return b >> 4
}

// GetDigits returns the ASCII digits from start to min(start+length,
// NumDigits).
func (s *Store) GetDigits(start, length int) string {
	if start >= s.numDigits || start < 0 {
		return ""
	}
	end := start + length
	if end > s.numDigits {
		end = s.numDigits
	}
	out := make([]byte, end-start)
	for i := range out {
		pos := start + i
		out[i] = unpackDigit(s.digits[pos/2], pos&1 == 1)
	}
	return string(out)
}

func searchKeyToBytes(key string) []byte {
	b := make([]byte, len(key))
	for i, c := range []byte(key) {
		b[i] = c - '0'
	}
	return b
}

func (s *Store) compare(start int, key []byte) int {
	n := len(key)
	short := 0
	if start+n > s.numDigits {
		n = s.numDigits - start
		short = -1
	}
	for i := 0; i < n; i++ {
		da := s.digitAt(start + i)
		if da < key[i] {
			return -1
		} else if da > key[i] {
			return 1
		}
	}
	return short
}

func (s *Store) idxrange(key []byte) (start, end int) {
	start = sort.Search(len(s.index), func(i int) bool {
		return s.compare(int(s.index[i]), key) >= 0
	})
	end = start + sort.Search(len(s.index)-start, func(j int) bool {
		return s.compare(int(s.index[j+start]), key) != 0
	})
	return
}

// Count returns how many times key occurs in the stored digits.
func (s *Store) Count(key string) int {
	start, end := s.idxrange(searchKeyToBytes(key))
	return end - start
}

func (s *Store) seqsearch(start int, key []byte) (found bool, position int) {
	maxPos := s.numDigits - len(key)
	for position = start; position <= maxPos; position++ {
		match := true
		for i, want := range key {
			if s.digitAt(position+i) != want {
				match = false
				break
			}
		}
		if match {
			return true, position
		}
	}
	return false, 0
}

func (s *Store) idxsearch(start int, key []byte) (found bool, position int, nMatches int) {
	foundStart, foundEnd := s.idxrange(key)
	nMatches = foundEnd - foundStart
	best := -1
	for i := 0; i < nMatches; i++ {
		pos := int(s.index[i+foundStart])
		if pos >= start && (best == -1 || pos < best) {
			best = pos
		}
	}
	if best >= 0 {
		return true, best, nMatches
	}
	return false, 0, 0
}

// Search returns the first occurrence of key at or after start,
// dispatching to a linear scan for short keys and the sorted index for
// longer ones, matching pisearch's seqThresh-based strategy.
func (s *Store) Search(start int, key string) (found bool, position int, nMatches int) {
	if len(key) == 0 {
		return false, 0, 0
	}
	keyBytes := searchKeyToBytes(key)
	if len(key) <= seqThresh {
		nMatches = s.Count(key)
		found, position = s.seqsearch(start, keyBytes)
		return found, position, nMatches
	}
	return s.idxsearch(start, keyBytes)
}

// Save writes the BCD-packed digits and the sorted position index to
// name+".4.bin" and name+".4.idx", the same file layout pisearch.Open
// reads back.
func (s *Store) Save(name string) error {
	if err := os.WriteFile(name+".4.bin", s.digits, 0o644); err != nil {
		return fmt.Errorf("digitstore: writing digit file: %w", err)
	}
	idx := make([]byte, len(s.index)*4)
	for i, pos := range s.index {
		binary.LittleEndian.PutUint32(idx[i*4:], uint32(pos))
	}
	if err := os.WriteFile(name+".4.idx", idx, 0o644); err != nil {
		return fmt.Errorf("digitstore: writing index file: %w", err)
	}
	return nil
}

func openAndMap(name string) (*os.File, []byte, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	mapped, err := syscall.Mmap(int(file.Fd()), 0, int(fi.Size()),
		syscall.PROT_READ, syscall.MAP_PRIVATE|syscall.MAP_POPULATE)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	return file, mapped, nil
}

// Open mmaps name+".4.bin" and name+".4.idx" as written by Save,
// exactly as pisearch.Open did for a precomputed digit file.
func Open(name string) (*Store, error) {
	file, digitMap, err := openAndMap(name + ".4.bin")
	if err != nil {
		return nil, err
	}
	idxFile, idxMap, err := openAndMap(name + ".4.idx")
	if err != nil {
		syscall.Munmap(digitMap)
		file.Close()
		return nil, err
	}

	index := make([]int32, len(idxMap)/4)
	for i := range index {
		index[i] = int32(binary.LittleEndian.Uint32(idxMap[i*4 : i*4+4]))
	}

	return &Store{
		digits:    digitMap,
		numDigits: len(index),
		index:     index,
		file:      file,
		fileMap:   digitMap,
		idxFile:   idxFile,
		idxMap:    idxMap,
	}, nil
}

// Close unmaps and closes any files opened by Open. It is a no-op for
// a Store built with Build and never persisted. Not safe to call
// concurrently with in-flight Search/GetDigits calls.
func (s *Store) Close() {
	if s.file == nil {
		return
	}
	if s.fileMap != nil {
		syscall.Munmap(s.fileMap)
	}
	s.file.Close()
	if s.idxMap != nil {
		syscall.Munmap(s.idxMap)
	}
	s.idxFile.Close()
	s.digits = nil
	s.index = nil
	s.numDigits = 0
}
