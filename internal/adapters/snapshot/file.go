package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// Version of the snapshot file layout
const Version = 1

type Header struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Tick    uint64    `json:"tick"`
}

type PlayerRecord struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Level           int      `json:"level"`
	CompletedQuests []string `json:"completed_quests,omitempty"`
}

// Snapshot is a full world export
type Snapshot struct {
	Header    Header           `json:"header"`
	Elapsed   float64          `json:"elapsed"`
	Buildings []InstanceRecord `json:"buildings"`
	Ledger    ledger.Balances  `json:"ledger"`
	Player    *PlayerRecord    `json:"player,omitempty"`
}

// WriteFile writes a JSON header line followed by the JSON body, zstd compressed
func WriteFile(path string, snap Snapshot) (err error) {
	if snap.Header.Version == 0 {
		snap.Header.Version = Version
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	// written to a sibling, then renamed into place
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(snap.Header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err = bw.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err = json.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = enc.Close(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile reads a snapshot written by WriteFile
func ReadFile(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(line, &header); err != nil {
		return snap, fmt.Errorf("decode header: %w", err)
	}
	if header.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", header.Version)
	}

	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
