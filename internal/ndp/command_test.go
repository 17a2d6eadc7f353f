package ndp

import "testing"

func TestCommandListsRejectsMalformedCommands(t *testing.T) {
	c := NewCommandLists()

	if err := c.AddTransmit(nil); err == nil {
		t.Error("AddTransmit(nil) should error")
	}
	if err := c.AddTransmit(&TransmitCommand{}); err == nil {
		t.Error("AddTransmit with empty interface/frame should error")
	}
	if c.Transmit.Len() != 0 {
		t.Errorf("Transmit list mutated by rejected commands: len=%d", c.Transmit.Len())
	}

	if err := c.AddListen(nil); err == nil {
		t.Error("AddListen(nil) should error")
	}
	if err := c.AddListen(&ListenCommand{Interface: "eth0"}); err == nil {
		t.Error("AddListen without a responder should error")
	}
	if c.Listen.Len() != 0 {
		t.Errorf("Listen list mutated by rejected commands: len=%d", c.Listen.Len())
	}
}

func TestCommandListsAcceptsValidCommands(t *testing.T) {
	c := NewCommandLists()
	f := newFrame()

	if err := c.AddTransmit(&TransmitCommand{Interface: "eth0", Frame: f}); err != nil {
		t.Fatalf("AddTransmit: %v", err)
	}
	if c.Transmit.Len() != 1 {
		t.Errorf("Transmit.Len() = %d, want 1", c.Transmit.Len())
	}

	if err := c.AddListen(&ListenCommand{Interface: "eth0", Responder: func(a, b, c []byte) *TransmitCommand { return nil }}); err != nil {
		t.Fatalf("AddListen: %v", err)
	}
	if c.Listen.Len() != 1 {
		t.Errorf("Listen.Len() = %d, want 1", c.Listen.Len())
	}
}
