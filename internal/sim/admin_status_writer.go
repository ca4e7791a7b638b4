package sim

import "context"

// AdminStatusWriter allows writers to receive admin UI status updates.
type AdminStatusWriter interface {
	SetAdminStatus(listening bool)
}

// ControlledWriter is implemented by writers that drive the simulator,
// such as the TUI.
type ControlledWriter interface {
	SetController(ctx context.Context, ctrl Controller)
}
