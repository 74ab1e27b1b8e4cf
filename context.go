package agrosense

const (
	ContextKeyAuthID      string = "agrosense.io/ctx/auth-id"
	ContextKeyAuthContext string = "agrosense.io/ctx/auth-context"
	ContextKeyAuthType    string = "agrosense.io/ctx/auth-type"
	ContextKeyRequestID   string = "agrosense.io/ctx/request-id"
	ContextKeySource      string = "agrosense.io/ctx/source"

	ContextKeyEventType    string = "agrosense.io/ctx/cloudevent/type"
	ContextKeyEventSubject string = "agrosense.io/ctx/cloudevent/subject"
)
