package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ListingSnapshot mirrors the last successfully fetched version of a listing so
// pages can still render while the content API is unreachable.
type ListingSnapshot struct {
	ListingID int            `gorm:"column:listing_id;primaryKey;autoIncrement:false" json:"listing_id"`
	Slug      string         `gorm:"column:slug;not null;index" json:"slug"`
	Active    bool           `gorm:"column:active;not null;default:true;index" json:"active"`
	Featured  bool           `gorm:"column:featured;not null;default:false" json:"featured"`
	Category  string         `gorm:"column:category" json:"category"`
	Position  int            `gorm:"column:position;not null;default:0" json:"position"`
	Payload   datatypes.JSON `gorm:"column:payload;type:json;not null" json:"payload"`
	SyncedAt  time.Time      `gorm:"column:syncedAt;not null" json:"syncedAt"`
}

func (ListingSnapshot) TableName() string {
	return "ListingSnapshots"
}
