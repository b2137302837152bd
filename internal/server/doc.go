// Package server wires and runs the document store's HTTP transport.
//
// It owns server startup, OS signal handling, and graceful shutdown.
package server
