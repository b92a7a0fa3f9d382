package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:          "ev-1",
		Slug:        "react-summit-2024",
		Title:       "React Summit 2024",
		Description: "The biggest React conference",
		Tags:        []string{"react", "frontend"},
		Agenda:      []string{"Keynote"},
		CreatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRedisEventCache_Get(t *testing.T) {
	ctx := context.Background()
	encoded, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mock    func(mock redismock.ClientMock)
		wantHit bool
		wantErr bool
	}{
		{
			name: "hit",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectGet("event:react-summit-2024").SetVal(string(encoded))
			},
			wantHit: true,
		},
		{
			name: "miss",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectGet("event:react-summit-2024").RedisNil()
			},
		},
		{
			name: "redis error",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectGet("event:react-summit-2024").SetErr(errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			name: "corrupt entry",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectGet("event:react-summit-2024").SetVal("{not json")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tt.mock(mock)

			c := NewRedisEventCache(client, time.Hour)
			got, hit, err := c.Get(ctx, "react-summit-2024")
			if tt.wantErr {
				require.Error(t, err)
				require.False(t, hit)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				require.Equal(t, sampleEvent(), got)
			} else {
				require.Nil(t, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisEventCache_SetUsesTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	e := sampleEvent()
	encoded, err := json.Marshal(e)
	require.NoError(t, err)

	mock.ExpectSet("event:react-summit-2024", string(encoded), time.Hour).SetVal("OK")

	c := NewRedisEventCache(client, time.Hour)
	require.NoError(t, c.Set(context.Background(), "react-summit-2024", e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisEventCache_SetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	e := sampleEvent()
	encoded, err := json.Marshal(e)
	require.NoError(t, err)

	mock.ExpectSet("event:react-summit-2024", string(encoded), time.Hour).SetErr(errors.New("READONLY"))

	c := NewRedisEventCache(client, time.Hour)
	require.Error(t, c.Set(context.Background(), "react-summit-2024", e))
}

func TestMemoryEventCache(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and returns", func(t *testing.T) {
		c := NewMemoryEventCache(10, time.Hour)
		_, hit, err := c.Get(ctx, "react-summit-2024")
		require.NoError(t, err)
		require.False(t, hit)

		require.NoError(t, c.Set(ctx, "react-summit-2024", sampleEvent()))
		got, hit, err := c.Get(ctx, "react-summit-2024")
		require.NoError(t, err)
		require.True(t, hit)
		require.Equal(t, "React Summit 2024", got.Title)
	})

	t.Run("returned events are copies", func(t *testing.T) {
		c := NewMemoryEventCache(10, time.Hour)
		src := sampleEvent()
		require.NoError(t, c.Set(ctx, "react-summit-2024", src))
		src.Tags[0] = "changed-after-set"

		got, _, err := c.Get(ctx, "react-summit-2024")
		require.NoError(t, err)
		got.Tags[0] = "mutated"
		got.Agenda = append(got.Agenda[:0], "mutated")

		again, hit, err := c.Get(ctx, "react-summit-2024")
		require.NoError(t, err)
		require.True(t, hit)
		assert.Equal(t, sampleEvent().Tags, again.Tags)
		assert.Equal(t, sampleEvent().Agenda, again.Agenda)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := NewMemoryEventCache(10, 20*time.Millisecond)
		require.NoError(t, c.Set(ctx, "react-summit-2024", sampleEvent()))
		require.Eventually(t, func() bool {
			_, hit, _ := c.Get(ctx, "react-summit-2024")
			return !hit
		}, time.Second, 10*time.Millisecond)
	})
}
