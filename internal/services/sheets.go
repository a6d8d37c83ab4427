package services

import (
	"context"
	"fmt"

	"govforms/internal/models"
	"govforms/internal/repository"

	"go.uber.org/zap"
)

// SheetsClient is a placeholder for a real spreadsheet API client.
type SheetsClient struct {
	log *zap.Logger
}

func NewSheetsClient(log *zap.Logger) *SheetsClient {
	return &SheetsClient{log: log}
}

// AppendRows simulates appending rows to a remote spreadsheet.
func (c *SheetsClient) AppendRows(ctx context.Context, spreadsheetID, sheetName string, rows [][]string) error {
	c.log.Info("Appending rows to spreadsheet",
		zap.String("spreadsheetId", spreadsheetID),
		zap.String("sheet", sheetName),
		zap.Int("rows", len(rows)),
	)
	// In a real application, this would call the Sheets API with an
	// authorized service account.
	fmt.Printf("--- SIMULATING SHEET APPEND ---\nSpreadsheet: %s\nSheet: %s\nRows: %d\n\n", spreadsheetID, sheetName, len(rows))
	return nil
}

// SheetSyncer exports completed interviews to a connected spreadsheet,
// one row per interview with its answers serialized alongside.
type SheetSyncer struct {
	log    *zap.Logger
	client *SheetsClient
}

func NewSheetSyncer(log *zap.Logger, client *SheetsClient) *SheetSyncer {
	return &SheetSyncer{log: log, client: client}
}

// Sync pushes all completed interviews through the connection and
// records the sync result. Returns the number of rows exported.
func (s *SheetSyncer) Sync(ctx context.Context, conn *models.SheetConnection) (int, error) {
	interviews, err := repository.ListCompletedInterviews(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list completed interviews: %w", err)
	}

	rows := make([][]string, 0, len(interviews))
	for _, iv := range interviews {
		rows = append(rows, interviewRow(iv))
	}

	if len(rows) > 0 {
		if err := s.client.AppendRows(ctx, conn.SpreadsheetID, conn.SheetName, rows); err != nil {
			return 0, fmt.Errorf("failed to append rows: %w", err)
		}
	}

	if err := repository.MarkSheetSynced(ctx, conn.ID, len(rows)); err != nil {
		return len(rows), fmt.Errorf("sync succeeded but connection update failed: %w", err)
	}

	s.log.Info("Sheet sync finished",
		zap.String("connection", conn.Name),
		zap.Int("rows", len(rows)),
	)
	return len(rows), nil
}

func interviewRow(iv models.Interview) []string {
	row := []string{
		iv.ID,
		iv.IntervieweeName,
		iv.IntervieweeID,
		iv.Location,
		iv.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
	for _, a := range iv.Answers {
		row = append(row, fmt.Sprintf("%s=%s", a.QuestionID, a.Value))
	}
	return row
}
