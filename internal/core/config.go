package core

// SessionConfig carries every optional parameter controlling how a session
// is resolved and dispatched. It is assembled once by the caller, passed by
// value through the pipeline, and never mutated.
//
// Field defaults:
//
//	CCXML       ""     resolve by Serial/DeviceType instead
//	Serial      ""     no serial number constraint
//	DeviceType  ""     derived from Serial when generating
//	Connection  ""     device's declared default when generating
//	Chip        ""     derived from the artifact's device type
//	Timeout     0      dss.DefaultTimeout
//	Debug       false  engine runs quiet
//	Fresh       false  reuse a cached artifact when identities agree
//	Attach      false  no workspace, no post-operation attach
type SessionConfig struct {
	CCXML      string
	Serial     string
	DeviceType string
	Connection string
	Chip       string
	Timeout    float64 // seconds
	Debug      bool
	Fresh      bool
	Attach     bool
}
