// Package input implements the NES standard controller's serial shift
// register protocol for ports $4016/$4017.
package input

// Button identifies one of the eight NES controller buttons, packed into
// the shift register in this bit order (A first, Right last).
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single NES controller port.
type Controller struct {
	buttons       uint8
	shiftRegister uint8
	strobe        bool
}

// New creates a Controller with no buttons pressed.
func New() *Controller {
	return &Controller{}
}

// SetButton sets or clears a single button's pressed state.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons replaces all button states at once, in A/B/Select/Start/
// Up/Down/Left/Right order.
func (c *Controller) SetButtons(buttons [8]bool) {
	var b uint8
	all := []Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			b |= uint8(all[i])
		}
	}
	c.buttons = b
}

// IsPressed reports whether the given button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to $4016. Bit 0 is the strobe; on its falling
// edge the current button state latches into the shift register.
func (c *Controller) Write(value uint8) {
	newStrobe := value&1 != 0
	if c.strobe && !newStrobe {
		c.shiftRegister = c.buttons
	}
	c.strobe = newStrobe
}

// Read returns the next serial bit. While strobe is held high the live
// A-button state is re-sampled on every read; once released, each read
// shifts the latched snapshot right and fills the vacated top bit with 1,
// so reads past the eighth return 1 forever until the next strobe.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	bit := c.shiftRegister & 1
	c.shiftRegister = (c.shiftRegister >> 1) | 0x80
	return bit
}

// Reset clears button state and the shift register.
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
}

// Ports holds the two NES controller ports and decodes $4016/$4017.
type Ports struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewPorts creates a pair of controller ports.
func NewPorts() *Ports {
	return &Ports{Controller1: New(), Controller2: New()}
}

// Reset resets both controllers.
func (p *Ports) Reset() {
	p.Controller1.Reset()
	p.Controller2.Reset()
}

// Read decodes $4016 (controller 1) and $4017 (controller 2). $4017's
// upper bits read back as open bus with bit 6 forced set, matching real
// hardware.
func (p *Ports) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return p.Controller1.Read()
	case 0x4017:
		return p.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write decodes $4016: both controllers share the single strobe line.
func (p *Ports) Write(address uint16, value uint8) {
	if address == 0x4016 {
		p.Controller1.Write(value)
		p.Controller2.Write(value)
	}
}
