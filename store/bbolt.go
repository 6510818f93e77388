package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go.etcd.io/bbolt"

	"github.com/simplething-io/simplething-app/climate"
	"github.com/simplething-io/simplething-app/hardware"
)

type BBolt struct {
	db *bbolt.DB
}

var _ Store = &BBolt{}

const (
	bboltThingBucket    = "simplething"
	bboltReadingsBucket = "readings" // child of simplething

	// simplething keys
	bboltHardwareKey  = "hardware"
	bboltLEDNumberKey = "led-number"
)

// readingKeyFormat orders reading keys chronologically under a byte-wise sort.
const readingKeyFormat = "2006-01-02T15:04:05.000000000Z07:00"

// OpenBBolt opens a bbolt database at the given path and creates the needed
// buckets if they don't exist.
func OpenBBolt(path string, mode os.FileMode, options *bbolt.Options) (Store, error) {
	db, err := bbolt.Open(path, mode, options)
	if err != nil {
		return nil, fmt.Errorf("unable to open bbolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		thingBucket, err := tx.CreateBucketIfNotExists([]byte(bboltThingBucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %q: %w", bboltThingBucket, err)
		}

		_, err = thingBucket.CreateBucketIfNotExists([]byte(bboltReadingsBucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %q: %w", bboltReadingsBucket, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create bbolt buckets: %w", err)
	}

	return &BBolt{
		db: db,
	}, nil
}

func (b *BBolt) Close() error {
	return b.db.Close()
}

func (b *BBolt) HardwareConfig() (hardware.Config, error) {
	var h hardware.Config
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bboltThingBucket))
		hardwareJSON := bucket.Get([]byte(bboltHardwareKey))
		if hardwareJSON == nil {
			return fmt.Errorf("hardware config does not exist")
		}

		if err := json.Unmarshal(hardwareJSON, &h); err != nil {
			return fmt.Errorf("unable to unmarshal hardware config JSON: %w", err)
		}

		return nil
	})
	if err != nil {
		return h, fmt.Errorf("unable to get hardware config: %w", err)
	}

	return h, nil
}

func (b *BBolt) PutHardwareConfig(h hardware.Config) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		hardwareJSON, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("unable to marshal hardware config: %w", err)
		}

		bucket := tx.Bucket([]byte(bboltThingBucket))
		if err := bucket.Put([]byte(bboltHardwareKey), hardwareJSON); err != nil {
			return fmt.Errorf("unable to put hardware config: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to update hardware config: %w", err)
	}

	return nil
}

func (b *BBolt) LEDNumber() (int, error) {
	var n int

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bboltThingBucket))
		raw := bucket.Get([]byte(bboltLEDNumberKey))
		if raw == nil {
			return nil
		}

		var err error
		n, err = strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("unable to parse stored LED number: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("unable to get LED number: %w", err)
	}

	return n, nil
}

func (b *BBolt) PutLEDNumber(n int) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bboltThingBucket))
		return bucket.Put([]byte(bboltLEDNumberKey), []byte(strconv.Itoa(n)))
	})
	if err != nil {
		return fmt.Errorf("unable to put LED number: %w", err)
	}

	return nil
}

func (b *BBolt) PutReading(r climate.Reading) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		readingJSON, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("unable to marshal reading: %w", err)
		}

		thingBucket := tx.Bucket([]byte(bboltThingBucket))
		readingsBucket := thingBucket.Bucket([]byte(bboltReadingsBucket))

		key := r.Time.UTC().Format(readingKeyFormat)
		if err := readingsBucket.Put([]byte(key), readingJSON); err != nil {
			return fmt.Errorf("unable to put reading %q: %w", key, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to append reading: %w", err)
	}

	return nil
}

func (b *BBolt) Readings(limit int) ([]climate.Reading, error) {
	readings := make([]climate.Reading, 0)

	err := b.db.View(func(tx *bbolt.Tx) error {
		thingBucket := tx.Bucket([]byte(bboltThingBucket))
		readingsBucket := thingBucket.Bucket([]byte(bboltReadingsBucket))

		cursor := readingsBucket.Cursor()
		for k, v := cursor.Last(); k != nil && len(readings) < limit; k, v = cursor.Prev() {
			var r climate.Reading
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unable to unmarshal reading %q: %w", k, err)
			}

			readings = append(readings, r)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list readings: %w", err)
	}

	return readings, nil
}
