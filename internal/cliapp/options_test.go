package cliapp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
)

func TestNAOptionsRequiredFields(t *testing.T) {
	o := NAOptions{Interface: "eth0"}
	_, err := o.ToTransmitCommand()
	if err == nil {
		t.Fatal("expected an error when required fields are missing")
	}
	var nerr *ndp.Error
	if !errors.As(err, &nerr) || nerr.Kind != ndp.ErrInvalidArgument {
		t.Fatalf("err = %v, want *ndp.Error{Kind: ErrInvalidArgument}", err)
	}
}

func TestNAOptionsDefaultsTargetFromSrc(t *testing.T) {
	o := NAOptions{
		Interface: "eth0",
		DstMac:    "33:33:00:00:00:01",
		DstIP:     "ff02::1",
		SrcIP:     "fe80::1",
		SrcMac:    "52:54:00:11:bf:3c",
	}
	tx, err := o.ToTransmitCommand()
	if err != nil {
		t.Fatalf("ToTransmitCommand: %v", err)
	}
	if tx.Interface != "eth0" {
		t.Errorf("Interface = %q, want eth0", tx.Interface)
	}

	out := tx.Frame.Bytes()
	data := out[58:]
	// target-eth defaults to src-mac, target-ip defaults to src-ip; both
	// appear in the option blob following the flags word.
	targetIP := data[4:20]
	targetEth := data[22:28]
	if string(targetIP) != string([]byte{0xfe, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}) {
		t.Errorf("target-ip defaulted incorrectly: % x", targetIP)
	}
	wantEth := []byte{0x52, 0x54, 0x00, 0x11, 0xbf, 0x3c}
	if string(targetEth) != string(wantEth) {
		t.Errorf("target-eth defaulted incorrectly: % x, want % x", targetEth, wantEth)
	}
}

func TestRAOptionsDstPairMustBeSetTogether(t *testing.T) {
	o := RAOptions{Interface: "eth0", RouterIP: "fe80::dead", DstMac: "33:33:00:00:00:01"}
	_, err := o.ToTransmitCommand()
	if err == nil {
		t.Fatal("expected an error when dst-mac is set without dst-ip")
	}
}

func TestRAOptionsDefaultsToAllNodesMulticast(t *testing.T) {
	o := RAOptions{
		Interface: "eth0",
		RouterIP:  "fe80::dead",
		SrcMac:    "52:54:00:11:bf:3c",
	}
	tx, err := o.ToTransmitCommand()
	if err != nil {
		t.Fatalf("ToTransmitCommand: %v", err)
	}
	wantDst := []byte{0x33, 0x33, 0x00, 0x00, 0x00, 0x01}
	if string(tx.DstEth) != string(wantDst) {
		t.Errorf("DstEth = % x, want % x", tx.DstEth, wantDst)
	}
}

func TestRAOptionsPrefixDefaultsTo64(t *testing.T) {
	o := RAOptions{
		Interface: "eth0",
		RouterIP:  "fe80::dead",
		SrcMac:    "52:54:00:11:bf:3c",
	}
	tx, err := o.ToTransmitCommand()
	if err != nil {
		t.Fatalf("ToTransmitCommand: %v", err)
	}
	out := tx.Frame.Bytes()
	prefixLenByte := out[58+8+2]
	if prefixLenByte != 64 {
		t.Errorf("prefix length = %d, want 64", prefixLenByte)
	}
}

func TestHDOptionsRequiresInterface(t *testing.T) {
	_, err := (HDOptions{}).ToListenCommand()
	if err == nil {
		t.Fatal("expected an error when interface is empty")
	}
}

// TestScriptJSONCLIParity is the "script/JSON parity" property: the same
// logical NA command populated from an Options literal, from a JSON
// object, and from a script line run through the na cobra command (the
// same command the argv front end uses) produces byte-identical frames.
func TestScriptJSONCLIParity(t *testing.T) {
	structOpts := NAOptions{
		Interface: "eth0",
		DstMac:    "33:33:00:00:00:01",
		DstIP:     "ff02::1",
		SrcIP:     "fe80::1",
		SrcMac:    "52:54:00:11:bf:3c",
		TargetMac: "52:54:00:11:bf:3c",
		TargetIP:  "fe80::abcd",
	}
	txA, err := structOpts.ToTransmitCommand()
	if err != nil {
		t.Fatalf("structOpts: %v", err)
	}

	var jsonOpts NAOptions
	doc := `{"interface": "eth0", "dst-mac": "33:33:00:00:00:01", "dst-ip": "ff02::1", "src-ip": "fe80::1", "src-mac": "52:54:00:11:bf:3c", "target-mac": "52:54:00:11:bf:3c", "target-ip": "fe80::abcd"}`
	if err := json.Unmarshal([]byte(doc), &jsonOpts); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	txB, err := jsonOpts.ToTransmitCommand()
	if err != nil {
		t.Fatalf("jsonOpts: %v", err)
	}

	app := &App{cmds: ndp.NewCommandLists(), deferRun: true}
	cmd, err := app.lineCommand("na")
	if err != nil {
		t.Fatalf("lineCommand: %v", err)
	}
	cmd.SetArgs(strings.Fields("-i eth0 -d 33:33:00:00:00:01 -D ff02::1 -S fe80::1 -s 52:54:00:11:bf:3c -t 52:54:00:11:bf:3c -T fe80::abcd"))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("script line: %v", err)
	}
	if app.cmds.Transmit.Len() != 1 {
		t.Fatalf("script line queued %d transmit commands, want 1", app.cmds.Transmit.Len())
	}
	txC := app.cmds.Transmit.Front().Value.(*ndp.TransmitCommand)

	a, b, c := txA.Frame.Bytes(), txB.Frame.Bytes(), txC.Frame.Bytes()
	if string(a) != string(b) {
		t.Fatalf("JSON frame differs:\n%x\n%x", a, b)
	}
	if string(a) != string(c) {
		t.Fatalf("script frame differs:\n%x\n%x", a, c)
	}
}
