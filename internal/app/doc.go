// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the load, index and serve lifecycle,
// decoupled from the command-line entrypoint.
package app
