package store

import (
	"context"
	"testing"
	"time"

	"peer_analysis/pkg/core/dart"
)

func TestStatementCacheFileRoundtrip(t *testing.T) {
	cache := NewStatementCache(nil, t.TempDir(), time.Hour)
	ctx := context.Background()

	rows := []dart.AccountRow{
		{AccountName: "매출액", CurrentAmount: "1,000"},
	}
	cache.Put(ctx, "00111111", "2023", dart.ReportAnnual, rows)

	got, ok := cache.Get(ctx, "00111111", "2023", dart.ReportAnnual)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].AccountName != "매출액" {
		t.Errorf("unexpected cached rows: %+v", got)
	}

	if _, ok := cache.Get(ctx, "00999999", "2023", dart.ReportAnnual); ok {
		t.Error("expected miss for unknown corp code")
	}
}

func TestStatementCacheExpiry(t *testing.T) {
	cache := NewStatementCache(nil, t.TempDir(), time.Nanosecond)
	ctx := context.Background()

	cache.Put(ctx, "00111111", "2023", dart.ReportAnnual, []dart.AccountRow{{AccountName: "매출액"}})
	time.Sleep(time.Millisecond)

	if _, ok := cache.Get(ctx, "00111111", "2023", dart.ReportAnnual); ok {
		t.Error("expired entry should miss")
	}
}
