package config

import (
	"encoding/base64"
	"testing"
)

func TestLoadRequiresSigningKey(t *testing.T) {
	t.Setenv("DPS_JWT_PRIVATE_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without signing key")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DPS_JWT_PRIVATE_KEY", base64.StdEncoding.EncodeToString([]byte("pem-bytes")))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.Addr)
	}
	if cfg.DatabaseDSN != "" {
		t.Fatalf("unexpected default dsn: %s", cfg.DatabaseDSN)
	}

	pemData, err := cfg.SigningKeyPEM()
	if err != nil {
		t.Fatalf("SigningKeyPEM: %v", err)
	}
	if string(pemData) != "pem-bytes" {
		t.Fatalf("signing key did not round-trip: %q", pemData)
	}
}

func TestSigningKeyPEMRejectsBadEncoding(t *testing.T) {
	cfg := &Config{SigningKeyB64: "%%% not base64 %%%"}
	if _, err := cfg.SigningKeyPEM(); err == nil {
		t.Fatal("expected decode error")
	}
}
