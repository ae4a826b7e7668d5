package stats

import (
	"fmt"

	"github.com/IT-Nick/garden-bot/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Листы выгрузки.
const (
	SummarySheet          = "Статистика"
	JoinedOnlySheet       = "Только присоединились"
	JoinedCompletedSheet  = "Присоединились и прошли тест"
	CompletedOnlySheet    = "Только прошли тест"
	completedColumnHeader = "Тест пройден раз"
)

var userColumns = []any{"id", "telegram_id", "user_name", "first_name", "last_name"}

// Buckets пользователи выгрузки, разложенные по группам.
type Buckets struct {
	JoinedOnly      []model.StatsRow
	JoinedCompleted []model.StatsRow
	CompletedOnly   []model.StatsRow
}

// Bucketize раскладывает строки по группам:
// без прохождений; присоединившиеся в периоде и прошедшие тест; прошедшие тест, но присоединившиеся раньше.
func Bucketize(rows []model.StatsRow, p Period) Buckets {
	var b Buckets
	for _, row := range rows {
		switch {
		case row.Completed == 0:
			b.JoinedOnly = append(b.JoinedOnly, row)
		case p.Contains(row.JoinedAt):
			b.JoinedCompleted = append(b.JoinedCompleted, row)
		default:
			b.CompletedOnly = append(b.CompletedOnly, row)
		}
	}
	return b
}

// Summary сводка для листа "Статистика".
// Percent доля присоединившихся в периоде, которые прошли тест.
type Summary struct {
	Period          string
	Active          int
	JoinedOnly      int
	JoinedCompleted int
	CompletedOnly   int
	Percent         float64
	Completed       int
}

// Summarize считает сводку по группам.
func Summarize(label string, b Buckets) Summary {
	s := Summary{
		Period:          label,
		JoinedOnly:      len(b.JoinedOnly),
		JoinedCompleted: len(b.JoinedCompleted),
		CompletedOnly:   len(b.CompletedOnly),
	}
	s.Active = s.JoinedOnly + s.JoinedCompleted + s.CompletedOnly

	joined := s.JoinedOnly + s.JoinedCompleted
	s.Percent = 100
	if joined > 0 {
		s.Percent = float64(s.JoinedCompleted) / float64(joined) * 100
	}

	for _, group := range [][]model.StatsRow{b.JoinedOnly, b.JoinedCompleted, b.CompletedOnly} {
		for _, row := range group {
			s.Completed += row.Completed
		}
	}
	return s
}

func (s Summary) columns(allTime bool) (headers, values []any) {
	headers = []any{"Период", "Активных человек", "Людей только присоединилось", "Людей присоединились и прошли тест"}
	values = []any{s.Period, s.Active, s.JoinedOnly, s.JoinedCompleted}
	if !allTime {
		headers = append(headers, "Людей только прошли тест")
		values = append(values, s.CompletedOnly)
	}
	headers = append(headers, "Процент людей, прошедших тест", completedColumnHeader)
	values = append(values, fmt.Sprintf("%.2f%%", s.Percent), s.Completed)
	return headers, values
}

// RenderWorkbook формирует xlsx-файл: лист сводки и по листу на каждую непустую группу.
func RenderWorkbook(summary Summary, b Buckets, allTime bool) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	headers, values := summary.columns(allTime)
	if err := writeRows(f, SummarySheet, [][]any{headers, values}); err != nil {
		return nil, err
	}

	groups := []struct {
		sheet     string
		rows      []model.StatsRow
		completed bool
	}{
		{JoinedOnlySheet, b.JoinedOnly, false},
		{JoinedCompletedSheet, b.JoinedCompleted, true},
		{CompletedOnlySheet, b.CompletedOnly, true},
	}
	for _, g := range groups {
		if len(g.rows) == 0 {
			continue
		}
		if _, err := f.NewSheet(g.sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", g.sheet, err)
		}
		if err := writeRows(f, g.sheet, userTable(g.rows, g.completed)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func userTable(rows []model.StatsRow, completed bool) [][]any {
	header := append([]any{}, userColumns...)
	if completed {
		header = append(header, completedColumnHeader)
	}

	table := make([][]any, 0, len(rows)+1)
	table = append(table, header)
	for _, r := range rows {
		line := []any{r.ID, r.TelegramID, deref(r.UserName), deref(r.FirstName), deref(r.LastName)}
		if completed {
			line = append(line, r.Completed)
		}
		table = append(table, line)
	}
	return table
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
