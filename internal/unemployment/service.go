// Package unemployment serves the regional unemployment dashboard.
package unemployment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sod/insight/internal/byteutil"
	"github.com/go-sod/insight/internal/cache"
	"github.com/go-sod/insight/internal/logging"
	"github.com/go-sod/insight/internal/records"
	"github.com/goccy/go-json"
)

const (
	Component  = "unemployment"
	dateLayout = "2006-01-02"
)

type Service struct {
	rows       []records.Record
	bounds     records.Selection
	cache      cache.Cache
	previewLen int
}

// NewService keeps rows for the lifetime of the process. c may be nil.
func NewService(rows []records.Record, c cache.Cache, previewLen int) (*Service, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("unemployment: %w", records.ErrNoData)
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		rows:       rows,
		bounds:     records.Bounds(rows),
		cache:      c,
		previewLen: previewLen,
	}, nil
}

// Bounds is the default selection: every region over the full date range.
func (s *Service) Bounds() records.Selection {
	return s.bounds
}

// Summarize filters the rows and aggregates them. Summaries are cached by
// selection; cache failures are logged and do not fail the request.
func (s *Service) Summarize(ctx context.Context, sel records.Selection) (*records.Summary, error) {
	logger := logging.FromContext(ctx)
	key := selectionKey(sel)

	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warnf("summary cache get: %v", err)
	} else if ok {
		var cached records.Summary
		if err := json.Unmarshal(b, &cached); err == nil {
			return &cached, nil
		}
		logger.Warnf("summary cache entry %s is corrupt", key)
	}

	summary, err := records.Summarize(records.Filter(s.rows, sel), s.previewLen)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, b); err != nil {
			logger.Warnf("summary cache set: %v", err)
		}
	}
	return summary, nil
}

func selectionKey(sel records.Selection) string {
	regions := append([]string(nil), sel.Regions...)
	sort.Strings(regions)
	var start, end string
	if !sel.Start.IsZero() {
		start = sel.Start.Format(dateLayout)
	}
	if !sel.End.IsZero() {
		end = sel.End.Format(dateLayout)
	}
	return "unemployment:" + byteutil.HashStrings(strings.Join(regions, "|"), start, end)
}
