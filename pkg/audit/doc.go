// Package audit provides audit logging for content operations.
//
// This package implements structured audit logging for security-relevant
// operations such as authentication attempts and record mutations.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Authentication events (success/failure)
//   - Record create/update/delete events
//
// # Usage
//
//	audit.Log(audit.RecordEvent{
//		UserID:    id.UserID,
//		Operation: "create",
//		Kind:      "training",
//		RecordID:  record.ID,
//		Success:   true,
//	})
//
// Audit events are logged in RFC5424 syslog format suitable for security
// monitoring and compliance requirements.
package audit
