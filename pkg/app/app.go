// Package app defines the runtime contract shared by the cmd/* entrypoints.
//
// It lets a binary start an application component without depending on its
// concrete implementation.
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
