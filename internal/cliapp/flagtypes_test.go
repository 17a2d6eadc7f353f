package cliapp

import "testing"

func TestMACFlagRejectsMalformed(t *testing.T) {
	var s string
	f := macFlag{&s}
	if err := f.Set("not-a-mac"); err == nil {
		t.Fatal("expected an error for a malformed MAC")
	}
	if err := f.Set("52:54:00:11:bf:3c"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s != "52:54:00:11:bf:3c" {
		t.Errorf("stored value = %q", s)
	}
}

func TestIPv6FlagRejectsIPv4(t *testing.T) {
	var s string
	f := ipv6Flag{&s}
	if err := f.Set("192.0.2.1"); err == nil {
		t.Fatal("expected an error for an IPv4 literal")
	}
	if err := f.Set("not-an-ip"); err == nil {
		t.Fatal("expected an error for a malformed address")
	}
	if err := f.Set("fe80::1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s != "fe80::1" {
		t.Errorf("stored value = %q", s)
	}
}
