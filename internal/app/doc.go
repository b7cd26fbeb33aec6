// Package app provides the application context for gzlaunch.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithConfigPath(path))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithConfig(cfg),
//	    app.WithFS(mockFS),
//	    app.WithStarter(mockStarter),
//	    app.WithEnviron(func() []string { return pairs }),
//	    app.WithProber(fakeProber),
//	)
//
// Commands obtain a Composer and Service from the App, so every
// launch goes through the injected file system, starter and prober.
package app
