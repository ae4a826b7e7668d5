package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/garden-bot/internal/domain/model"
)

const (
	labelLayout    = "02.01.2006.15:04"
	fileNameLayout = "02_01_2006_15_04"
)

// Source выборка пользователей с числом пройденных тестов.
type Source interface {
	UsersWithActionCounts(ctx context.Context, from, to *time.Time) ([]model.StatsRow, error)
}

// Report готовый файл выгрузки.
type Report struct {
	FileName string
	Data     []byte
}

// Service строит выгрузки статистики.
type Service struct {
	source Source
	loc    *time.Location
	now    func() time.Time
}

// NewService создает сервис выгрузки. loc: часовой пояс для подписей периода и имени файла.
func NewService(source Source, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{source: source, loc: loc, now: time.Now}
}

// Location возвращает часовой пояс выгрузки.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now возвращает текущее время.
func (s *Service) Now() time.Time {
	return s.now()
}

// Export строит выгрузку за период. Если за период нет ни одного активного пользователя, возвращает nil.
func (s *Service) Export(ctx context.Context, p Period) (*Report, error) {
	from, to := p.Bounds()
	rows, err := s.source.UsersWithActionCounts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load users stats: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	now := s.now()
	labelFrom, labelTo := p.From, p.To
	if p.AllTime {
		labelFrom, labelTo = rows[0].JoinedAt, now
	}
	label := s.formatRange(labelFrom, labelTo, labelLayout)

	buckets := Bucketize(rows, p)
	data, err := RenderWorkbook(Summarize(label, buckets), buckets, p.AllTime)
	if err != nil {
		return nil, err
	}

	return &Report{FileName: s.FileName(p, now), Data: data}, nil
}

// FileName возвращает имя файла выгрузки.
func (s *Service) FileName(p Period, now time.Time) string {
	if p.AllTime {
		return "all_" + now.In(s.loc).Format(fileNameLayout) + ".xlsx"
	}
	return s.formatRange(p.From, p.To, fileNameLayout) + ".xlsx"
}

func (s *Service) formatRange(from, to time.Time, layout string) string {
	return from.In(s.loc).Format(layout) + "-" + to.In(s.loc).Format(layout)
}
