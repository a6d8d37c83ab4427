package repository

import (
	"context"
	"time"

	"govforms/internal/database"
	"govforms/internal/models"

	"github.com/google/uuid"
)

func CreateSheetConnection(ctx context.Context, conn *models.SheetConnection) error {
	if conn.ID == "" {
		conn.ID = uuid.NewString()
	}
	return database.DB.WithContext(ctx).Create(conn).Error
}

func GetSheetConnection(ctx context.Context, id string) (*models.SheetConnection, error) {
	var conn models.SheetConnection
	err := database.DB.WithContext(ctx).First(&conn, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func ListSheetConnections(ctx context.Context) ([]models.SheetConnection, error) {
	var conns []models.SheetConnection
	err := database.DB.WithContext(ctx).Order("created_at").Find(&conns).Error
	return conns, err
}

// ListAutoSyncConnections finds connections due for a background sync:
// auto-sync enabled and never synced, or last synced before cutoff.
func ListAutoSyncConnections(ctx context.Context, cutoff time.Time) ([]models.SheetConnection, error) {
	var conns []models.SheetConnection
	err := database.DB.WithContext(ctx).
		Where("auto_sync = ? AND (last_synced_at IS NULL OR last_synced_at < ?)", true, cutoff).
		Find(&conns).Error
	return conns, err
}

func UpdateSheetConnection(ctx context.Context, id string, name, spreadsheetID, sheetName string, autoSync bool) error {
	return database.DB.WithContext(ctx).Model(&models.SheetConnection{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":           name,
			"spreadsheet_id": spreadsheetID,
			"sheet_name":     sheetName,
			"auto_sync":      autoSync,
		}).Error
}

// MarkSheetSynced records a successful sync and the cumulative row count.
func MarkSheetSynced(ctx context.Context, id string, rowsSynced int) error {
	now := time.Now().UTC()
	return database.DB.WithContext(ctx).Model(&models.SheetConnection{}).Where("id = ?", id).
		Updates(map[string]interface{}{"last_synced_at": now, "rows_synced": rowsSynced}).Error
}

func DeleteSheetConnection(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Delete(&models.SheetConnection{}, "id = ?", id).Error
}
