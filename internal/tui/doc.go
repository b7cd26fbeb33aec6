// Package tui provides terminal user interface components for gzlaunch.
//
// # World Picker
//
// The picker lists the world files found in the worlds directory and lets
// the user choose one, optionally with the simulator GUI:
//
//	result, err := tui.RunPicker(worlds)
//	switch result.Action {
//	case tui.ActionLaunch:
//	    // start result.World, with the client if result.GUI
//	case tui.ActionPlan:
//	    // print the launch description only
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// Keys: Enter (launch), p (plan), g (toggle GUI), / (filter), q (quit).
//
// SimpleList renders the same information without a terminal UI.
package tui
