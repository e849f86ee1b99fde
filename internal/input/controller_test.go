package input

import "testing"

func TestNewControllerDefaultState(t *testing.T) {
	c := New()
	if c.buttons != 0 || c.shiftRegister != 0 || c.strobe {
		t.Fatalf("expected zeroed default state, got %+v", c)
	}
}

func TestSetButtonsAndIsPressed(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonRight, true)
	if !c.IsPressed(ButtonA) || !c.IsPressed(ButtonRight) {
		t.Fatalf("expected A and Right pressed")
	}
	if c.IsPressed(ButtonB) {
		t.Fatalf("B should not be pressed")
	}
	c.SetButton(ButtonA, false)
	if c.IsPressed(ButtonA) {
		t.Fatalf("A should be released")
	}
}

func TestAPlusRightReadSequenceThenAllOnes(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, false, false, false, false, true}) // A + Right

	c.Write(1) // strobe high
	c.Write(0) // falling edge latches the snapshot

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("read %d = %d, want %d", i, got, w)
		}
	}
	for i := 0; i < 4; i++ {
		if got := c.Read(); got != 1 {
			t.Fatalf("read past the 8th bit = %d, want 1 (open-bus fill)", got)
		}
	}
}

func TestStrobeHighAlwaysReportsLiveAButton(t *testing.T) {
	c := New()
	c.Write(1) // strobe high
	if got := c.Read(); got != 0 {
		t.Fatalf("A not pressed: read = %d, want 0", got)
	}
	c.SetButton(ButtonA, true)
	if got := c.Read(); got != 1 {
		t.Fatalf("strobe high should re-sample live A state: read = %d, want 1", got)
	}
}

func TestPortsDollar4017ForcesBit6(t *testing.T) {
	p := NewPorts()
	p.Write(0x4016, 1)
	p.Write(0x4016, 0)
	got := p.Read(0x4017)
	if got&0x40 == 0 {
		t.Fatalf("expected bit 6 forced set on $4017 reads, got %#02x", got)
	}
}

func TestPortsStrobeSharedAcrossBothControllers(t *testing.T) {
	p := NewPorts()
	p.Controller1.SetButton(ButtonA, true)
	p.Controller2.SetButton(ButtonB, true)
	p.Write(0x4016, 1)
	p.Write(0x4016, 0)
	if got := p.Read(0x4016); got != 1 {
		t.Fatalf("controller 1 first read = %d, want 1", got)
	}
	if got := p.Read(0x4017) & 1; got != 0 {
		t.Fatalf("controller 2 first read bit (A) = %d, want 0", got)
	}
	if got := p.Read(0x4017) & 1; got != 1 {
		t.Fatalf("controller 2 second read bit (B) = %d, want 1", got)
	}
}
