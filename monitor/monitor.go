// This file is part of CTREmu.
//
// CTREmu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CTREmu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CTREmu.  If not, see <https://www.gnu.org/licenses/>.

// Package monitor reads single keypresses from the controlling terminal
// without blocking the emulation loop. The terminal is put into cbreak
// mode for the lifetime of the Monitor; callers must call Restore() on the
// way out or the user gets a broken shell.
package monitor

import (
	"github.com/pkg/term"
)

// Monitor is a non-blocking single-key reader for the controlling
// terminal.
type Monitor struct {
	t    *term.Term
	keys chan byte
}

// NewMonitor opens the controlling terminal in cbreak mode. It fails when
// there is no controlling terminal, in which case the emulation should
// carry on without one.
func NewMonitor() (*Monitor, error) {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		t:    t,
		keys: make(chan byte, 8),
	}

	// the reader goroutine blocks on the terminal. it dies with the
	// process; there is no clean way to interrupt a read on every
	// platform and no need to.
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := m.t.Read(buf)
			if err != nil || n == 0 {
				return
			}
			select {
			case m.keys <- buf[0]:
			default:
				// drop keypresses rather than stall
			}
		}
	}()

	return m, nil
}

// Check returns a pending keypress, if there is one, without blocking.
func (m *Monitor) Check() (byte, bool) {
	select {
	case k := <-m.keys:
		return k, true
	default:
		return 0, false
	}
}

// Restore returns the terminal to the mode it was in before NewMonitor().
func (m *Monitor) Restore() {
	m.t.Restore()
	m.t.Close()
}
