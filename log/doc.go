// Package log contains the leveled logger used by all includes packages.
//
// The package wraps around the 'github.com/neuronlabs/uni-logger' interfaces, so that any
// third-party logger wrapped by the unilogger could be used. By default no logger is set and
// all the logs are discarded. Call Default or New to enable logging to the 'os.Stderr' or
// provided writer.
//
// Each package creates its own ModuleLogger, which prefixes the messages with the module name
// and might have its own level.
package log
