// Package persistence stores device credentials durably across restarts.
//
// The factory reset id obtained on first pairing is the thermostat's
// authentication token; it must be resupplied on every reconnect and is
// unrecoverable without a factory reset of the device. CredentialStore
// abstracts where it lives: FileStore keeps a JSON file on disk,
// MemoryStore backs tests and hosts with their own storage facility.
package persistence
