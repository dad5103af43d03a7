package planindex

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/pebble"

	"github.com/vhbit/cargo/util"
)

// IndexDirName is the index location under a package's target directory.
const IndexDirName = ".artifact-index"

// Store is the persistent artifact index: one record per planned
// artifact, keyed by identity so later tooling can look up whether an
// output for a given fingerprint already exists. Single caller at a
// time; pebble holds the directory lock.
type Store struct {
	db *pebble.DB
}

func Open(targetDir string) (*Store, error) {
	db, err := pebble.Open(filepath.Join(targetDir, IndexDirName), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact index under %s: %w", targetDir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const maxWriterBuffer = 16 << 20

// bulkWrite batches index writes and commits when the buffered size
// grows past maxWriterBuffer, compacting the written range on close.
type bulkWrite struct {
	db              *pebble.DB
	batch           *pebble.Batch
	highest, lowest []byte
	curSize         int
}

func copyBytes(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}

func (bw *bulkWrite) Set(id []byte, val []byte) error {
	bw.curSize += len(id) + len(val)
	if bw.highest == nil || bytes.Compare(id, bw.highest) > 0 {
		bw.highest = copyBytes(id)
	}
	if bw.lowest == nil || bytes.Compare(id, bw.lowest) < 0 {
		bw.lowest = copyBytes(id)
	}
	err := bw.batch.Set(id, val, nil)
	if bw.curSize > maxWriterBuffer {
		bw.batch.Commit(nil)
		bw.batch.Reset()
		bw.curSize = 0
	}
	return err
}

func (bw *bulkWrite) Close() error {
	err := bw.batch.Commit(nil)
	if err != nil {
		return err
	}
	bw.batch.Close()
	if bw.lowest != nil && bw.highest != nil {
		bw.db.Compact(bw.lowest, bw.highest, true)
	}
	return nil
}

// Write stores every artifact record, canonically encoded so identical
// plans produce byte-identical index contents.
func (s *Store) Write(artifacts []Artifact) error {
	bw := &bulkWrite{db: s.db, batch: s.db.NewBatch()}
	for _, artifact := range artifacts {
		value, err := util.CanonicalMarshal(artifact)
		if err != nil {
			return fmt.Errorf("failed to encode artifact %s: %w", artifact.Name, err)
		}
		if err := bw.Set(artifactKey(artifact), value); err != nil {
			return fmt.Errorf("failed to index artifact %s: %w", artifact.Name, err)
		}
	}
	return bw.Close()
}

// List returns every stored artifact in key order.
func (s *Store) List() ([]Artifact, error) {
	iter := s.db.NewIter(nil)
	defer iter.Close()

	artifacts := []Artifact{}
	for iter.First(); iter.Valid(); iter.Next() {
		var artifact Artifact
		if err := util.CanonicalUnmarshal(iter.Value(), &artifact); err != nil {
			return nil, fmt.Errorf("failed to decode artifact record %q: %w", iter.Key(), err)
		}
		artifacts = append(artifacts, artifact)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func artifactKey(artifact Artifact) []byte {
	return []byte(artifact.Name + "\x00" + strings.Join(artifact.Kind, ",") + "\x00" + artifact.Fingerprint)
}
