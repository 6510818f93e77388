package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	badger "github.com/dgraph-io/badger/v2"

	"github.com/simplething-io/simplething-app/climate"
	"github.com/simplething-io/simplething-app/hardware"
)

type badgerDB struct {
	db *badger.DB
}

var _ Store = &badgerDB{}

const (
	badgerHardwareKey   = "hardware"
	badgerLEDNumberKey  = "led-number"
	badgerReadingPrefix = "readings/"
)

// OpenBadger opens a badger DB with the given options as a simplething-app
// store. Pass options built with WithInMemory(true) for an ephemeral store.
func OpenBadger(options badger.Options) (Store, error) {
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("unable to open badger db: %w", err)
	}

	return &badgerDB{db: db}, nil
}

func (b *badgerDB) Close() error {
	return b.db.Close()
}

func (b *badgerDB) get(key string, found func(val []byte) error) error {
	return b.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(found)
	})
}

func (b *badgerDB) HardwareConfig() (hardware.Config, error) {
	var h hardware.Config

	err := b.get(badgerHardwareKey, func(val []byte) error {
		if err := json.Unmarshal(val, &h); err != nil {
			return fmt.Errorf("unable to unmarshal hardware config JSON: %w", err)
		}

		return nil
	})
	if err != nil {
		return h, fmt.Errorf("unable to get hardware config: %w", err)
	}

	return h, nil
}

func (b *badgerDB) PutHardwareConfig(h hardware.Config) error {
	hardwareJSON, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("unable to marshal hardware config: %w", err)
	}

	err = b.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(badgerHardwareKey), hardwareJSON)
	})
	if err != nil {
		return fmt.Errorf("unable to put hardware config: %w", err)
	}

	return nil
}

func (b *badgerDB) LEDNumber() (int, error) {
	var n int

	err := b.get(badgerLEDNumberKey, func(val []byte) error {
		var err error
		n, err = strconv.Atoi(string(val))
		if err != nil {
			return fmt.Errorf("unable to parse stored LED number: %w", err)
		}

		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unable to get LED number: %w", err)
	}

	return n, nil
}

func (b *badgerDB) PutLEDNumber(n int) error {
	err := b.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(badgerLEDNumberKey), []byte(strconv.Itoa(n)))
	})
	if err != nil {
		return fmt.Errorf("unable to put LED number: %w", err)
	}

	return nil
}

func (b *badgerDB) PutReading(r climate.Reading) error {
	readingJSON, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("unable to marshal reading: %w", err)
	}

	key := badgerReadingPrefix + r.Time.UTC().Format(readingKeyFormat)

	err = b.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(key), readingJSON)
	})
	if err != nil {
		return fmt.Errorf("unable to append reading %q: %w", key, err)
	}

	return nil
}

func (b *badgerDB) Readings(limit int) ([]climate.Reading, error) {
	readings := make([]climate.Reading, 0)

	err := b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := tx.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerReadingPrefix)

		// In reverse mode the iterator starts at the key equal to or before
		// the seek target, so seek just past the prefix range.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(readings) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r climate.Reading
				if err := json.Unmarshal(val, &r); err != nil {
					return fmt.Errorf("unable to unmarshal reading %q: %w", it.Item().Key(), err)
				}

				readings = append(readings, r)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list readings: %w", err)
	}

	return readings, nil
}
