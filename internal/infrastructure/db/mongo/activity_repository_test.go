package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

func TestToActivityDocument(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	at := now.Add(-time.Minute)

	doc := toActivityDocument(domain.Activity{
		Kind:      domain.ActivityMint,
		Role:      domain.RoleUser,
		Account:   "c1c1",
		Subject:   "a1/Summer",
		Succeeded: true,
		At:        at,
	}, now)

	if doc.Kind != "mint" || doc.Role != "user" || doc.Subject != "a1/Summer" || !doc.Succeeded {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if !doc.At.Equal(at) || doc.At.Location() != time.UTC {
		t.Errorf("expected At in UTC, got %v", doc.At)
	}
	if !doc.RecordedAt.Equal(now) {
		t.Errorf("expected RecordedAt %v, got %v", now, doc.RecordedAt)
	}
}

func TestToActivityDocument_DefaultsTimestamp(t *testing.T) {
	now := time.Now()
	doc := toActivityDocument(domain.Activity{Kind: domain.ActivityLogin}, now)
	if !doc.At.Equal(now) {
		t.Errorf("expected At to default to now, got %v", doc.At)
	}
}

func TestActivityDocument_OmitsEmptyFields(t *testing.T) {
	raw, err := bson.Marshal(toActivityDocument(domain.Activity{Kind: domain.ActivityRoleConflict}, time.Now()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"_id", "detail", "subject"} {
		if _, ok := m[key]; ok {
			t.Errorf("expected %q to be omitted", key)
		}
	}
	if m["succeeded"] != false {
		t.Errorf("succeeded must always be written, got %v", m["succeeded"])
	}
}
