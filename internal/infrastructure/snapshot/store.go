// Package snapshot mirrors the listing catalog into SQL so pages keep
// rendering while the content API is unreachable.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"porvenir-web/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrEmpty is returned when nothing has been mirrored yet.
var ErrEmpty = errors.New("snapshot: no listings mirrored")

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Replace swaps the mirror for listings in one transaction, keeping their order.
func (s *Store) Replace(ctx context.Context, listings []domain.Listing, syncedAt time.Time) error {
	rows := make([]domain.ListingSnapshot, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		payload, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("snapshot: encode listing %d: %w", l.ID, err)
		}
		rows = append(rows, domain.ListingSnapshot{
			ListingID: l.ID,
			Slug:      l.Slug,
			Active:    l.Active,
			Featured:  l.Featured,
			Category:  l.CategoryName(),
			Position:  i,
			Payload:   datatypes.JSON(payload),
			SyncedAt:  syncedAt,
		})
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.ListingSnapshot{}).Error; err != nil {
			return fmt.Errorf("snapshot: clear: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("snapshot: insert: %w", err)
		}
		return nil
	})
}

// Active returns the mirrored active listings in their original order and
// the time they were synced.
func (s *Store) Active(ctx context.Context) ([]domain.Listing, time.Time, error) {
	var rows []domain.ListingSnapshot
	err := s.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("snapshot: load: %w", err)
	}
	if len(rows) == 0 {
		return nil, time.Time{}, ErrEmpty
	}
	return decode(rows)
}

// BySlug returns one mirrored listing.
func (s *Store) BySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	var row domain.ListingSnapshot
	err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %q: %w", slug, err)
	}
	var l domain.Listing
	if err := json.Unmarshal(row.Payload, &l); err != nil {
		return nil, fmt.Errorf("snapshot: decode %q: %w", slug, err)
	}
	return &l, nil
}

// Count returns how many listings are mirrored, for the health page.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&domain.ListingSnapshot{}).Count(&n).Error
	return n, err
}

func decode(rows []domain.ListingSnapshot) ([]domain.Listing, time.Time, error) {
	out := make([]domain.Listing, 0, len(rows))
	var synced time.Time
	for _, r := range rows {
		var l domain.Listing
		if err := json.Unmarshal(r.Payload, &l); err != nil {
			return nil, time.Time{}, fmt.Errorf("snapshot: decode listing %d: %w", r.ListingID, err)
		}
		out = append(out, l)
		if r.SyncedAt.After(synced) {
			synced = r.SyncedAt
		}
	}
	return out, synced, nil
}
