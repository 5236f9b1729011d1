// Package logger provides adapters for popular logger libraries to work with btmap's Logger interface.
//
// The adapters allow you to use your existing logger with btmap without writing boilerplate.
// Note that the standard library's slog.Logger already implements btmap.Logger directly.
//
// Example with zap:
//
//	import (
//	    "github.com/alexhholmes/btmap"
//	    "github.com/alexhholmes/btmap/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    tree := btmap.New[string, int](btmap.WithLogger(logger.NewZap(zapLogger)))
//	    tree.Insert("answer", 42)
//	}
package logger
