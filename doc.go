// Package notelet is the Composition Root for the Notelet library.
//
// It connects the core note model (Domain Layer) with the storage adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Notelet is a local-first note-taking core for toolmakers. Notes are trees
// of typed blocks (text, checklist, toggle) persisted through a pluggable
// key-value port; the engine itself never touches the network. Mutations
// made offline accumulate in a sync queue for a future remote to replay.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Block Trees**: Notes are ordered trees of text, checklist and toggle blocks.
//   - **Soft Delete**: Trash with a retention window and a startup expiry sweep.
//   - **Offline First**: Mutations made offline are queued for later sync.
//   - **Ranked Search**: In-memory full-text index with weighted scoring and highlights.
//   - **Adapters Included**: Filesystem (watchable), SQLite and in-memory stores.
//
// Usage:
//
//	// Open a vault with functional options
//	vault, err := notelet.Open(ctx, "./my-notes",
//		notelet.WithLogger(logger),
//	)
//
//	// Create a note and search for it
//	note, err := vault.Create(ctx, notelet.Note{Title: "Shopping list"})
//	results, err := vault.Search(ctx, "shopping")
package notelet
