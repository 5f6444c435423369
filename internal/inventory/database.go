package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	itemBucketName  = "food_items"
	alertBucketName = "alerts"
)

// ErrNotFound is returned when an item id has no record.
var ErrNotFound = errors.New("item not found")

// Store defines the persistence operations the rest of the application
// uses.
type Store interface {
	// AddItem validates and saves a new item, assigning it an id and
	// timestamps. The item's Name must be non-empty after trimming.
	AddItem(item *FoodItem) error

	// GetItem retrieves an item by id.
	GetItem(id string) (*FoodItem, error)

	// ListByStatus returns all items with the given status, sorted by
	// expiry date ascending.
	ListByStatus(status Status) ([]*FoodItem, error)

	// ExpiringWithin returns active items whose expiry falls in
	// (now, now+days], sorted by expiry date ascending.
	ExpiringWithin(days int, now time.Time) ([]*FoodItem, error)

	// UpdateStatus transitions an item to a new lifecycle state.
	UpdateStatus(id string, status Status) error

	// DeleteItem removes an item and its alert history.
	DeleteItem(id string) error

	// SaveAlert records one triggered alert.
	SaveAlert(alert *AlertRecord) error

	// ListAlerts returns alert records, filtered to one item when itemID
	// is non-empty, newest first.
	ListAlerts(itemID string) ([]*AlertRecord, error)

	// Close releases the underlying database.
	Close() error
}

// BoltStore implements Store using bbolt.
type BoltStore struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the bbolt database at path and ensures
// the buckets exist.
func Open(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(itemBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(alertBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// AddItem validates and persists a new item.
func (s *BoltStore) AddItem(item *FoodItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return errors.New("food name cannot be empty")
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = StatusActive
	}
	if !ValidStatus(item.Status) {
		return fmt.Errorf("invalid status %q", item.Status)
	}

	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucketName))
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item: %w", err)
		}
		return bucket.Put([]byte(item.ID), data)
	})
}

// GetItem retrieves an item by id.
func (s *BoltStore) GetItem(id string) (*FoodItem, error) {
	var item *FoodItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(itemBucketName)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByStatus returns all items in one lifecycle state, soonest expiry
// first.
func (s *BoltStore) ListByStatus(status Status) ([]*FoodItem, error) {
	items := make([]*FoodItem, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(itemBucketName)).ForEach(func(k, v []byte) error {
			var item FoodItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("unmarshaling item %s: %w", k, err)
			}
			if item.Status == status {
				items = append(items, &item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortByExpiry(items)
	return items, nil
}

// ExpiringWithin returns active items expiring in (now, now+days].
func (s *BoltStore) ExpiringWithin(days int, now time.Time) ([]*FoodItem, error) {
	cutoff := now.AddDate(0, 0, days)
	active, err := s.ListByStatus(StatusActive)
	if err != nil {
		return nil, err
	}
	expiring := make([]*FoodItem, 0)
	for _, item := range active {
		if item.ExpiryDate.After(now) && !item.ExpiryDate.After(cutoff) {
			expiring = append(expiring, item)
		}
	}
	return expiring, nil
}

// UpdateStatus transitions an item to a new lifecycle state and bumps its
// update timestamp.
func (s *BoltStore) UpdateStatus(id string, status Status) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		var item FoodItem
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("unmarshaling item %s: %w", id, err)
		}
		item.Status = status
		item.UpdatedAt = time.Now().UTC()
		updated, err := json.Marshal(&item)
		if err != nil {
			return fmt.Errorf("marshaling item: %w", err)
		}
		return bucket.Put([]byte(id), updated)
	})
}

// DeleteItem removes an item and any alert records that reference it.
func (s *BoltStore) DeleteItem(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket([]byte(itemBucketName)).Delete([]byte(id)); err != nil {
			return err
		}
		alerts := tx.Bucket([]byte(alertBucketName))
		var stale [][]byte
		err := alerts.ForEach(func(k, v []byte) error {
			var rec AlertRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil // skip corrupt record
			}
			if rec.ItemID == id {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := alerts.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveAlert records one triggered alert.
func (s *BoltStore) SaveAlert(alert *AlertRecord) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.TriggeredAt.IsZero() {
		alert.TriggeredAt = time.Now().UTC()
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("marshaling alert: %w", err)
		}
		return tx.Bucket([]byte(alertBucketName)).Put([]byte(alert.ID), data)
	})
}

// ListAlerts returns alert records, newest first, optionally filtered to
// one item.
func (s *BoltStore) ListAlerts(itemID string) ([]*AlertRecord, error) {
	records := make([]*AlertRecord, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(alertBucketName)).ForEach(func(k, v []byte) error {
			var rec AlertRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling alert %s: %w", k, err)
			}
			if itemID == "" || rec.ItemID == itemID {
				records = append(records, &rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].TriggeredAt.After(records[j].TriggeredAt)
	})
	return records, nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func sortByExpiry(items []*FoodItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ExpiryDate.Before(items[j].ExpiryDate)
	})
}
