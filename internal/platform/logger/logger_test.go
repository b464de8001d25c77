package logger

import (
	"strings"
	"testing"
)

func TestSanitizeRedactsSensitiveKeys(t *testing.T) {
	l := &Logger{redact: redaction{enabled: true}}
	out := l.sanitizeKVs([]interface{}{"password", "hunter2", "Email", "a@b.c", "status", 200})
	if out[1] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("email not redacted: %v", out[3])
	}
	if out[5] != 200 {
		t.Fatalf("status changed: %v", out[5])
	}
}

func TestSanitizeHashesIDs(t *testing.T) {
	l := &Logger{redact: redaction{enabled: true, salt: "s"}}
	out := l.sanitizeKVs([]interface{}{"user_id", "abc"})
	got, _ := out[1].(string)
	if !strings.HasPrefix(got, "hash:") || len(got) != len("hash:")+12 {
		t.Fatalf("unexpected hash: %q", got)
	}
	again := l.sanitizeKVs([]interface{}{"user_id", "abc"})
	if again[1] != got {
		t.Fatalf("hash not stable: %v vs %v", again[1], got)
	}
}

func TestSanitizeDisabledPassesThrough(t *testing.T) {
	l := &Logger{redact: redaction{enabled: false}}
	out := l.sanitizeKVs([]interface{}{"token", "x"})
	if out[1] != "x" {
		t.Fatalf("expected passthrough, got %v", out[1])
	}
}

func TestSanitizeOddKV(t *testing.T) {
	l := &Logger{redact: redaction{enabled: true}}
	out := l.sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected: %v", out)
	}
}

func TestNewTestModeIsQuiet(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("hello", "k", "v")
	l.With("component", "x").Debug("ok")
}
