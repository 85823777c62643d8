// Package schedkit is a client SDK for the campus scheduling API. It
// manages the credential and session lifecycle for a long-running admin
// frontend: persisted credential storage, a session state machine, an
// authenticated transport that transparently refreshes expired access
// credentials, and typed clients for the scheduling resources.
//
// The facade wires the subsystems together:
//
//	cfg, err := schedkit.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := schedkit.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Restore outcome is visible on the session snapshot.
//	if !client.Sessions.Current().IsAuthenticated() {
//		if err := client.Auth.Login(ctx, email, password); err != nil {
//			log.Fatal(err)
//		}
//	}
//
//	programs, err := client.API.Programs.List(ctx)
//
// Every subsystem is also usable on its own; see the core packages for
// the individual building blocks.
package schedkit
