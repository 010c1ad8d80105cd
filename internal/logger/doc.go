// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder that colors levels on terminals,
//   - an optional rotating JSON log file (lumberjack) tee'd with the console,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, so scans and
// archive writes are logged with the scope of the command that started them.
package logger
