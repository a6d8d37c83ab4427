package models

import "time"

// SheetConnection links completed interviews to an external spreadsheet.
// When AutoSync is set, the background scheduler exports new rows on the
// configured interval; otherwise syncs are triggered manually.
type SheetConnection struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Name          string     `json:"name"`
	SpreadsheetID string     `json:"spreadsheetId"`
	SheetName     string     `json:"sheetName"`
	AutoSync      bool       `json:"autoSync"`
	LastSyncedAt  *time.Time `json:"lastSyncedAt,omitempty"`
	RowsSynced    int        `json:"rowsSynced"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
