// Package port allocates exclusive network parameters for a simulation
// instance.
//
// Each instance needs a coordination port nobody else on the host is using.
// The port doubles as the ROS domain id and as the port of the Gazebo master
// URI, so two instances launched side by side never see each other's traffic.
//
// # Allocation
//
//	alloc, err := port.NewAllocator(port.DefaultRange(), nil).Allocate(ctx)
//	// alloc.Port      = 12345
//	// alloc.DomainID  = "12345"
//	// alloc.MasterURI = "http://localhost:12345"
//
// Candidates are drawn uniformly at random without replacement from the
// range and probed with a TCP connect to localhost. A successful connect
// means the port is taken; the allocator logs the collision and draws again.
// Allocation fails with ErrExhausted once every candidate was tried (or
// MaxAttempts probes were made).
//
// # Probe Errors
//
// Only a refused connection counts as "free". Timeouts and other dial
// failures surface as *ProbeError; the allocator treats them as a busy
// candidate and moves on.
//
// # Reservation
//
// Allocate only observes the port. Reserve additionally binds a listener on
// it and holds it until Release, so a concurrent launcher probing the same
// candidate sees it as taken:
//
//	res, err := alloc.Reserve(ctx)
//	defer res.Release()
package port
