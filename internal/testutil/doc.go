// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// TOML config fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/invalid_config.toml
//
//	cfg, err := testutil.ValidConfig()
//	data, err := testutil.InvalidConfigData()
//
// # Test Environment
//
// NewTestEnv installs a fake MARA workspace in a MockFS and swaps
// app.Default for an App that uses it, a MockStarter and a prober
// driven by SetBusy:
//
//	env := testutil.NewTestEnv(t)
//	env.SetBusy(10000, 10001)
//	// run commands, then inspect env.Starter.Started and env.Output
package testutil
