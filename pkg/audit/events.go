package audit

import "fmt"

// AuthnEvent represents a login attempt audit event
type AuthnEvent struct {
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthnEvent) MessageID() string {
	return "authn"
}

func (e AuthnEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Email)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthnEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthnEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthnEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"email": e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authn",
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}

// RecordEvent represents a record mutation audit event. Operation is one of
// "create", "update" or "delete".
type RecordEvent struct {
	UserID       string
	ClientIP     string
	Operation    string
	Kind         string
	RecordID     string
	Success      bool
	ErrorMessage string
}

func (e RecordEvent) MessageID() string {
	return e.Operation
}

func (e RecordEvent) Message() string {
	subject := e.Kind
	if e.RecordID != "" {
		subject += "/" + e.RecordID
	}
	if e.Success {
		return fmt.Sprintf("%s %sd %s", e.UserID, e.Operation, subject)
	}
	msg := fmt.Sprintf("%s tried to %s %s", e.UserID, e.Operation, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RecordEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RecordEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RecordEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"kind":   e.Kind,
			"record": e.RecordID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
