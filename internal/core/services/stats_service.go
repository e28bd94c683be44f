package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/sync/errgroup"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
)

// StatsService summarizes the assets visible to the current user
type StatsService struct {
	assets ports.AssetAPI
	cache  ports.QueryCache
}

// NewStatsService creates a new stats service
func NewStatsService(assets ports.AssetAPI, cache ports.QueryCache) *StatsService {
	return &StatsService{assets: assets, cache: cache}
}

// Count is one labelled bucket
type Count struct {
	Label string
	Value int
}

// StatsResponse holds the per-dimension breakdown
type StatsResponse struct {
	Total      int
	ByStatus   []Count
	ByType     []Count
	ByCategory []Count
}

// Execute loads one list per status concurrently and aggregates them
func (s *StatsService) Execute(ctx context.Context) (*StatsResponse, error) {
	statuses := domain.ValidStatuses()

	var (
		mu         sync.Mutex
		byStatus   = make(map[string]int)
		byType     = make(map[string]int)
		byCategory = make(map[string]int)
		total      int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(statuses))
	for _, st := range statuses {
		filter := domain.ListFilter{Status: string(st)}
		g.Go(func() error {
			v, err := s.cache.Fetch(gctx, domain.AssetListKey(filter), func(ctx context.Context) (any, error) {
				return s.assets.List(ctx, filter)
			})
			if err != nil {
				return fmt.Errorf("failed to list %s assets: %w", filter.Status, err)
			}
			list := v.(*domain.AssetList)

			mu.Lock()
			defer mu.Unlock()
			byStatus[filter.Status] += len(list.Items)
			total += len(list.Items)
			for _, a := range list.Items {
				t := string(a.BasicInformation.AssetType)
				if t == "" {
					t = "unknown"
				}
				byType[t]++
				for _, c := range a.BasicInformation.Categories {
					byCategory[c.Primary]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &StatsResponse{
		Total:      total,
		ByStatus:   sortedCounts(byStatus),
		ByType:     sortedCounts(byType),
		ByCategory: sortedCounts(byCategory),
	}, nil
}

// Render writes the breakdown as an HTML page of charts
func (s *StatsService) Render(stats *StatsResponse, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "Asset library statistics"

	status := charts.NewPie()
	status.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Assets by status",
		Subtitle: fmt.Sprintf("%d total", stats.Total),
	}))
	status.AddSeries("status", pieData(stats.ByStatus))

	types := charts.NewPie()
	types.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Assets by type"}))
	types.AddSeries("type", pieData(stats.ByType))

	categories := charts.NewBar()
	categories.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Assets by category"}))
	labels := make([]string, len(stats.ByCategory))
	bars := make([]opts.BarData, len(stats.ByCategory))
	for i, c := range stats.ByCategory {
		labels[i] = c.Label
		bars[i] = opts.BarData{Value: c.Value}
	}
	categories.SetXAxis(labels).AddSeries("assets", bars)

	page.AddCharts(status, types, categories)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

func pieData(counts []Count) []opts.PieData {
	out := make([]opts.PieData, len(counts))
	for i, c := range counts {
		out[i] = opts.PieData{Name: c.Label, Value: c.Value}
	}
	return out
}

// sortedCounts orders buckets by value descending, then label
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, v := range m {
		out = append(out, Count{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}
