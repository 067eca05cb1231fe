package publishers

import "github.com/Adda-Baaj/nievex-client/pkg/httpclient"

// Logger defines the logging surface publishers rely on. It matches the
// transport's so one logger serves both.
type Logger = httpclient.Logger

func ensureLogger(log Logger) Logger { return httpclient.EnsureLogger(log) }
