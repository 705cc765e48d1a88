package people

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/goliatone/go-displaymeta/pkg/model"
)

// MetadataBuilder resolves display metadata; the orchestrator satisfies it.
type MetadataBuilder interface {
	Build(ctx context.Context, v any) (model.FormModel, error)
}

// WarmupReport describes what Warmup primed.
type WarmupReport struct {
	People   int64
	Fields   int
	Duration time.Duration
}

// Warmup pings the database, runs a first query so the connection pool and
// statement caches are primed, and builds the Person display metadata so the
// first request does not pay for reflection.
func Warmup(ctx context.Context, db *gorm.DB, builder MetadataBuilder) (WarmupReport, error) {
	start := time.Now()
	report := WarmupReport{}

	sqlDB, err := db.DB()
	if err != nil {
		return report, fmt.Errorf("people: warmup: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return report, fmt.Errorf("people: warmup ping: %w", err)
	}
	if err := db.WithContext(ctx).Model(&Person{}).Count(&report.People).Error; err != nil {
		return report, fmt.Errorf("people: warmup count: %w", err)
	}
	if builder != nil {
		form, err := builder.Build(ctx, Person{})
		if err != nil {
			return report, fmt.Errorf("people: warmup metadata: %w", err)
		}
		report.Fields = len(form.Fields)
	}
	report.Duration = time.Since(start)
	return report, nil
}
