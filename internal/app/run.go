package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/erpindex/internal/courseindex"
	"github.com/specialistvlad/erpindex/internal/ctxlog"
	"github.com/specialistvlad/erpindex/internal/ingest"
	"github.com/specialistvlad/erpindex/internal/menu"
	"github.com/specialistvlad/erpindex/internal/query"
	"github.com/specialistvlad/erpindex/internal/render"
	"github.com/specialistvlad/erpindex/internal/views"
)

// Run loads the records, builds the derived structures and then either
// answers the one-shot query or serves the menu reading from in.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "source", a.config.SourcePath)

	loader := ingest.NewLoader(a.config.Ingest)
	r, report, err := loader.LoadFile(ctx, a.config.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}
	if r.Len() == 0 {
		a.logger.Warn("Source contained no usable rows.", "rows", report.Rows, "skipped", len(report.Skipped))
		fmt.Fprintln(a.outW, "No students loaded.")
		return nil
	}

	sv := views.Build(ctx, r)
	db := courseindex.New()
	db.Build(ctx, r)
	engine := query.New(db, r, query.WithDefaultThreshold(a.config.DefaultThreshold))

	if a.config.OneShot() {
		a.logger.Debug("Answering one-shot query.", "course", a.config.Course, "threshold", a.config.Threshold)
		render.QueryResult(a.outW, engine.AtLeast(a.config.Course, a.config.Threshold))
		return nil
	}

	m := menu.New(in, a.outW, menu.Session{
		Roster: r,
		Views:  sv,
		Index:  db,
		Engine: engine,
	}, a.config.Interactive)
	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
