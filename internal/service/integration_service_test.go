package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/testutil"
)

func testEncryptionKey(t *testing.T) string {
	t.Helper()

	key := &fernet.Key{}
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return key.Encode()
}

func TestIntegrationService_DealFeedToken(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips the stored token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestIntegrationService(t, db, testEncryptionKey(t))

		if err := svc.SetDealFeedToken(ctx, "feed-token-123"); err != nil {
			t.Fatalf("SetDealFeedToken failed: %v", err)
		}

		token, err := svc.DealFeedToken(ctx)
		if err != nil {
			t.Fatalf("DealFeedToken failed: %v", err)
		}
		if token != "feed-token-123" {
			t.Errorf("Expected feed-token-123, got %q", token)
		}
	})

	t.Run("stores only ciphertext", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestIntegrationService(t, db, testEncryptionKey(t))

		if err := svc.SetDealFeedToken(ctx, "feed-token-123"); err != nil {
			t.Fatalf("SetDealFeedToken failed: %v", err)
		}

		var stored string
		if err := db.QueryRow(`SELECT value FROM system_setting WHERE "key" = 'deal_feed_token'`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored value: %v", err)
		}
		if stored == "feed-token-123" {
			t.Error("Expected stored value to be encrypted, got plaintext")
		}
	})

	t.Run("returns not found before configuration", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestIntegrationService(t, db, testEncryptionKey(t))

		_, err := svc.DealFeedToken(ctx)
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("treats token stored under another key as unset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		first := testutil.NewTestIntegrationService(t, db, testEncryptionKey(t))
		if err := first.SetDealFeedToken(ctx, "feed-token-123"); err != nil {
			t.Fatalf("SetDealFeedToken failed: %v", err)
		}

		// A rotated key cannot decrypt the old ciphertext.
		second := testutil.NewTestIntegrationService(t, db, testEncryptionKey(t))
		_, err := second.DealFeedToken(ctx)
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})
}

func TestIntegrationService_Status(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestIntegrationService(t, db, testEncryptionKey(t))

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.DealFeedConfigured {
		t.Error("Expected deal feed unconfigured")
	}

	if err := svc.SetDealFeedToken(ctx, "feed-token-123"); err != nil {
		t.Fatalf("SetDealFeedToken failed: %v", err)
	}

	status, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.DealFeedConfigured {
		t.Error("Expected deal feed configured")
	}
}
