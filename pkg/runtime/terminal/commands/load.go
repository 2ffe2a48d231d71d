package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/config"
	healthexport "github.com/de-tools/health-atlas/pkg/services/export"
)

// loadRecords runs the extraction pipeline for a command invocation: params
// file, optional cutoff override, then one pass over the export file.
// Extraction logs go to stderr so stdout stays clean for tables and reports.
func loadRecords(ctx context.Context, exportPath, configPath, cutoff string) (domain.Params, *domain.RecordSet, error) {
	params, err := config.LoadParams(configPath)
	if err != nil {
		return domain.Params{}, nil, err
	}

	if cutoff != "" {
		date, err := domain.ParseDate(cutoff)
		if err != nil {
			return domain.Params{}, nil, fmt.Errorf("invalid --cutoff: %w", err)
		}
		params.CutoffDate = date
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	set, _, err := healthexport.CollectFile(ctx, exportPath, params)
	if err != nil {
		return domain.Params{}, nil, fmt.Errorf("failed to read export %q: %w", exportPath, err)
	}
	return params, set, nil
}
