/*
MIT License

Copyright (c) 2025 Первый Бит

Данная лицензия разрешает использование, копирование, изменение, слияние, публикацию, распространение,
лицензирование и/или продажу копий программного обеспечения при соблюдении следующих условий:

В вышеуказанном уведомлении об авторских правах и данном уведомлении о разрешении должны быть включены все копии
или значимые части программного обеспечения.

ПРОГРАММНОЕ ОБЕСПЕЧЕНИЕ ПРЕДОСТАВЛЯЕТСЯ "КАК ЕСТЬ", БЕЗ ГАРАНТИЙ ЛЮБОГО РОДА, ЯВНЫХ ИЛИ ПОДРАЗУМЕВАЕМЫХ,
ВКЛЮЧАЯ, НО НЕ ОГРАНИЧИВАЯСЬ, ГАРАНТИЯМИ КОММЕРЧЕСКОЙ ПРИГОДНОСТИ, СООТВЕТСТВИЯ ДЛЯ ОПРЕДЕЛЕННОЙ ЦЕЛИ И
НЕНАРУШЕНИЯ ПРАВ. НИ В КОЕМ СЛУЧАЕ АВТОРЫ ИЛИ ПРАВООБЛАДАТЕЛИ НЕ НЕСУТ ОТВЕТСТВЕННОСТИ ПО ИСКАМ,
УСЛОВИЯМ, ДАМГЕ или другим обязательствам, возникающим из, или в связи с использованием, или иным образом
связанным с данным программным обеспечением.
*/

package export_handler

import (
	"bytes"
	"context"
	"errors"

	"github.com/IT-Nick/garden-bot/internal/app/middleware"
	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"gopkg.in/telebot.v4"
)

const emptyText = "За указанный период нет активности"

// Exporter строит выгрузку статистики за период.
type Exporter interface {
	Export(ctx context.Context, p stats.Period) (*stats.Report, error)
}

// ExportHandler отправляет администратору Excel-файл со статистикой за период,
// разобранный middleware.ParsePeriod.
type ExportHandler struct {
	exporter Exporter
}

func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

func (h *ExportHandler) Handle(c telebot.Context) error {
	p, ok := middleware.PeriodFrom(c)
	if !ok {
		return errors.New("export period is not set")
	}

	report, err := h.exporter.Export(context.Background(), p)
	if err != nil {
		return err
	}
	if report == nil {
		return c.Send(emptyText)
	}

	return c.Send(&telebot.Document{
		File:     telebot.FromReader(bytes.NewReader(report.Data)),
		FileName: report.FileName,
	})
}

func (h *ExportHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
