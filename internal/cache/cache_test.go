package cache

import (
	"testing"
	"time"

	"tradethrust/internal/model"
)

func TestMemory_HitAndMiss(t *testing.T) {
	c := NewMemory(time.Minute)

	if _, ok := c.Get("NVDA@2024-01-05#300"); ok {
		t.Fatal("empty cache must miss")
	}

	want := &model.AnalysisResult{Symbol: "NVDA", CompositeScore: 88}
	c.Put("NVDA@2024-01-05#300", want)

	got, ok := c.Get("NVDA@2024-01-05#300")
	if !ok {
		t.Fatal("expected a hit after put")
	}
	if got != want {
		t.Error("cache must return the stored result")
	}
	if _, ok := c.Get("NVDA@2024-01-06#301"); ok {
		t.Error("a different key must miss")
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemory(30 * time.Minute)
	c.now = func() time.Time { return now }

	c.Put("AAPL@2024-02-29#300", &model.AnalysisResult{Symbol: "AAPL"})

	now = now.Add(29 * time.Minute)
	if _, ok := c.Get("AAPL@2024-02-29#300"); !ok {
		t.Error("entry inside the TTL must hit")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("AAPL@2024-02-29#300"); ok {
		t.Error("entry past the TTL must miss")
	}
}

func TestMemory_PutPurgesExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemory(10 * time.Minute)
	c.now = func() time.Time { return now }

	c.Put("OLD", &model.AnalysisResult{Symbol: "OLD"})
	now = now.Add(11 * time.Minute)
	c.Put("NEW", &model.AnalysisResult{Symbol: "NEW"})

	if len(c.entries) != 1 {
		t.Errorf("expired entries should be purged on put, have %d", len(c.entries))
	}
	if _, ok := c.Get("NEW"); !ok {
		t.Error("fresh entry must survive the purge")
	}
}
