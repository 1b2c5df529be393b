package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/yakshop/internal/config"
	"github.com/mamadbah2/yakshop/internal/domain/models"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshStock(context.Context) (models.StockSnapshot, error) {
	f.calls++
	return models.StockSnapshot{}, f.err
}

type fakeReporter struct {
	days []time.Time
}

func (f *fakeReporter) GenerateDailyReport(_ context.Context, day time.Time) (models.DailyRevenueReport, error) {
	f.days = append(f.days, day)
	return models.DailyRevenueReport{Date: day.Format("2006-01-02")}, nil
}

func (f *fakeReporter) Summary(models.DailyRevenueReport) string {
	return "summary"
}

func validConfig() config.ReportingConfig {
	return config.ReportingConfig{CronSchedule: "0 20 * * *", StockRefreshCron: "*/15 * * * *", Timezone: "UTC"}
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Nowhere/Special"

	_, err := NewScheduler(cfg, &fakeRefresher{}, &fakeReporter{}, nil)
	assert.Error(t, err)
}

func TestStartRejectsBadCron(t *testing.T) {
	cfg := validConfig()
	cfg.CronSchedule = "every evening"

	s, err := NewScheduler(cfg, &fakeRefresher{}, &fakeReporter{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartRegistersJobs(t *testing.T) {
	s, err := NewScheduler(validConfig(), &fakeRefresher{}, &fakeReporter{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Len(t, s.cron.Entries(), 2)
}

func TestJobs(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("upstream down")}
	reporter := &fakeReporter{}
	s, err := NewScheduler(validConfig(), refresher, reporter, nil)
	require.NoError(t, err)

	day := time.Date(2025, 1, 21, 20, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	s.refreshStock()
	s.sendDailyReport()

	assert.Equal(t, 1, refresher.calls)
	require.Len(t, reporter.days, 1)
	assert.Equal(t, day, reporter.days[0])
}
