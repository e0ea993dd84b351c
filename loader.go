package cashflowr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// GuestPartition is the identity key of the anonymous partition. Guest data
// and each account's data are disjoint.
const GuestPartition = "guest"

// ledgerFile returns the on-disk path of a partition's ledger.
func ledgerFile(path, name string) string {
	return filepath.Join(path, name+".jsonl")
}

// LoadLedger loads the ledger of one identity partition from the data
// directory. A missing file is not an error: it yields an empty ledger, the
// partition's default state.
func LoadLedger(path, name string) (*Ledger, error) {
	f, err := os.Open(ledgerFile(path, name))
	if errors.Is(err, fs.ErrNotExist) {
		l := NewLedger()
		l.name = name
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file for %q: %w", name, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file for %q: %w", name, err)
	}
	ledger.name = name
	return ledger, nil
}

// SaveLedger saves a ledger to its partition file, overwriting the whole
// blob. Durability is at-most-last-full-snapshot: there is no partial-write
// recovery.
func SaveLedger(path string, ledger *Ledger) error {
	if ledger.Name() == "" {
		return fmt.Errorf("cannot save ledger with an empty partition name")
	}
	filePath := ledgerFile(path, ledger.Name())
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", filePath, err)
	}
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", filePath, err)
	}
	defer file.Close()
	return EncodeLedger(file, ledger)
}

// MigrateGuest copies the guest partition's data into a newly authenticated
// identity's partition. It runs at most once per identity: if the identity
// already has a ledger file nothing happens. The guest copy is removed
// afterwards.
func MigrateGuest(path, name string) (migrated bool, err error) {
	if name == GuestPartition {
		return false, nil
	}
	if _, err := os.Stat(ledgerFile(path, name)); err == nil {
		return false, nil // identity already has data, never overwrite it
	}
	guestPath := ledgerFile(path, GuestPartition)
	if _, err := os.Stat(guestPath); errors.Is(err, fs.ErrNotExist) {
		return false, nil // nothing to migrate
	}

	guest, err := LoadLedger(path, GuestPartition)
	if err != nil {
		return false, fmt.Errorf("could not load guest data: %w", err)
	}
	if guest.Len() == 0 && !guest.Goal().IsSet() {
		return false, nil
	}
	guest.name = name
	if err := SaveLedger(path, guest); err != nil {
		return false, fmt.Errorf("could not migrate guest data to %q: %w", name, err)
	}
	if err := os.Remove(guestPath); err != nil {
		return true, fmt.Errorf("migrated, but could not remove guest data: %w", err)
	}
	return true, nil
}

// ratesFile is shared by all partitions: exchange rates are not per-user.
func ratesFile(path string) string {
	return filepath.Join(path, "rates.json")
}

// LoadRates loads the persisted rate snapshot, or nil if none exists.
func LoadRates(path string) (*RateSnapshot, error) {
	f, err := os.Open(ratesFile(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open rates file: %w", err)
	}
	defer f.Close()
	return DecodeRates(f)
}

// SaveRates overwrites the persisted rate snapshot.
func SaveRates(path string, s *RateSnapshot) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	f, err := os.Create(ratesFile(path))
	if err != nil {
		return fmt.Errorf("error opening rates file for writing: %w", err)
	}
	defer f.Close()
	return EncodeRates(f, s)
}
