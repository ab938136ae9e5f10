package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyherald/internal/config"
	"skyherald/internal/forecasts"
	"skyherald/internal/notifications/webhook"
	"skyherald/internal/types"
)

type mockRegionProvider struct {
	regions []types.Region
}

func (m *mockRegionProvider) Get(id string) (types.Region, bool) {
	for _, r := range m.regions {
		if r.ID == id {
			return r, true
		}
	}
	return types.Region{}, false
}

func (m *mockRegionProvider) All() []types.Region { return m.regions }

type mockWeatherService struct {
	batchFunc func(ctx context.Context, date time.Time) (*forecasts.BatchResult, error)
	weekFunc  func(ctx context.Context, regionID string, start time.Time) ([]*types.WeatherResult, error)
}

func (m *mockWeatherService) Daily(context.Context, string, time.Time) (*types.WeatherResult, error) {
	panic("not used by dispatcher")
}

func (m *mockWeatherService) Week(ctx context.Context, regionID string, start time.Time) ([]*types.WeatherResult, error) {
	return m.weekFunc(ctx, regionID, start)
}

func (m *mockWeatherService) Batch(ctx context.Context, date time.Time) (*forecasts.BatchResult, error) {
	return m.batchFunc(ctx, date)
}

type sentMessage struct {
	msg  *webhook.Message
	dest string
}

type mockChannel struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (m *mockChannel) Send(_ context.Context, msg *webhook.Message, destination string) *types.DeliveryResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{msg: msg, dest: destination})
	if destination == "" {
		return &types.DeliveryResult{DeliveryID: "d", Kind: types.DeliverySkipped}
	}
	return &types.DeliveryResult{DeliveryID: "d", Kind: types.DeliverySuccess, StatusCode: 200}
}

func (m *mockChannel) sentMessages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}

func result(c types.WeatherCondition) *types.WeatherResult {
	return &types.WeatherResult{Condition: c, Impacts: []string{}}
}

func testRegions() []types.Region {
	return []types.Region{
		{ID: "patlania", Name: "Patlania", WebhookURL: "https://discord.com/api/webhooks/1/a"},
		{ID: "velden", Name: "Velden", WebhookURL: ""},
	}
}

func newTestDispatcher(clock clockwork.Clock, svc forecasts.WeatherService, ch DeliveryChannel, outlookDay string) *Dispatcher {
	return NewDispatcher(DispatcherConfig{
		Weather: svc,
		Regions: &mockRegionProvider{regions: testRegions()},
		Channel: ch,
		Clock:   clock,
		Dispatch: config.DispatchConfig{
			PostHourUTC: 6,
			OutlookDay:  outlookDay,
		},
	})
}

func TestRunOnceDeliversDailyReports(t *testing.T) {
	// A Tuesday; outlook configured for Monday, so daily only.
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 12, 6, 0, 0, 0, time.UTC))

	svc := &mockWeatherService{
		batchFunc: func(_ context.Context, date time.Time) (*forecasts.BatchResult, error) {
			assert.Equal(t, time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC), date)
			return &forecasts.BatchResult{Results: map[string]*types.WeatherResult{
				"patlania": result(types.ConditionHot),
				"velden":   result(types.ConditionFog),
			}}, nil
		},
	}
	ch := &mockChannel{}

	d := newTestDispatcher(clock, svc, ch, "Monday")
	require.NoError(t, d.RunOnce(context.Background()))

	sent := ch.sentMessages()
	require.Len(t, sent, 2)
	for _, s := range sent {
		assert.Equal(t, webhook.KindDaily, s.msg.Kind)
	}
	// Region order from the provider is preserved.
	assert.Equal(t, "Patlania", sent[0].msg.RegionName)
	assert.Equal(t, "https://discord.com/api/webhooks/1/a", sent[0].dest)
	assert.Equal(t, "Velden", sent[1].msg.RegionName)
	assert.Equal(t, "", sent[1].dest)
}

func TestRunOnceAddsOutlookOnConfiguredDay(t *testing.T) {
	// 2025-08-11 is a Monday.
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 11, 6, 0, 0, 0, time.UTC))

	svc := &mockWeatherService{
		batchFunc: func(context.Context, time.Time) (*forecasts.BatchResult, error) {
			return &forecasts.BatchResult{Results: map[string]*types.WeatherResult{
				"patlania": result(types.ConditionHot),
				"velden":   result(types.ConditionFog),
			}}, nil
		},
		weekFunc: func(_ context.Context, _ string, start time.Time) ([]*types.WeatherResult, error) {
			assert.Equal(t, time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC), start)
			days := make([]*types.WeatherResult, 7)
			for i := range days {
				days[i] = result(types.ConditionClearSkies)
			}
			return days, nil
		},
	}
	ch := &mockChannel{}

	d := newTestDispatcher(clock, svc, ch, "Monday")
	require.NoError(t, d.RunOnce(context.Background()))

	sent := ch.sentMessages()
	// Two regions, each with a daily and an outlook message.
	require.Len(t, sent, 4)

	var outlooks int
	for _, s := range sent {
		if s.msg.Kind == webhook.KindOutlook {
			outlooks++
			assert.Len(t, s.msg.Days, 7)
		}
	}
	assert.Equal(t, 2, outlooks)
}

func TestRunOnceSkipsFailedRegions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 12, 6, 0, 0, 0, time.UTC))

	svc := &mockWeatherService{
		batchFunc: func(context.Context, time.Time) (*forecasts.BatchResult, error) {
			return &forecasts.BatchResult{
				Results: map[string]*types.WeatherResult{"patlania": result(types.ConditionHot)},
				Errors:  map[string]forecasts.ErrorDetail{"velden": {Code: "config_missing_season", Message: "no summer table"}},
			}, nil
		},
	}
	ch := &mockChannel{}

	d := newTestDispatcher(clock, svc, ch, "Monday")
	require.NoError(t, d.RunOnce(context.Background()))

	sent := ch.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Patlania", sent[0].msg.RegionName)
}

func TestNextRun(t *testing.T) {
	d := newTestDispatcher(clockwork.NewFakeClock(), &mockWeatherService{}, &mockChannel{}, "Monday")

	// Before the post hour: today.
	now := time.Date(2025, 8, 12, 4, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 12, 6, 0, 0, 0, time.UTC), d.nextRun(now))

	// Exactly at the post hour: tomorrow (strictly after).
	now = time.Date(2025, 8, 12, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 13, 6, 0, 0, 0, time.UTC), d.nextRun(now))

	// After the post hour: tomorrow.
	now = time.Date(2025, 8, 12, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 13, 6, 0, 0, 0, time.UTC), d.nextRun(now))
}

func TestRunDispatchesAtPostHour(t *testing.T) {
	start := time.Date(2025, 8, 12, 4, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)

	var mu sync.Mutex
	var batches int
	svc := &mockWeatherService{
		batchFunc: func(context.Context, time.Time) (*forecasts.BatchResult, error) {
			mu.Lock()
			batches++
			mu.Unlock()
			return &forecasts.BatchResult{Results: map[string]*types.WeatherResult{}}, nil
		},
	}

	d := newTestDispatcher(clock, svc, &mockChannel{}, "Monday")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// Wait for the loop to arm its timer, then advance past the post hour.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(2 * time.Hour)

	// Wait for the loop to re-arm for the next day, proving RunOnce finished.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	mu.Lock()
	ran := batches
	mu.Unlock()
	assert.Equal(t, 1, ran)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
