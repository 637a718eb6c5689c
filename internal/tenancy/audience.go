package tenancy

import "fmt"

// Audience classifies the trust level of a caller. It is fixed for the
// lifetime of a transaction and selects the database role every statement
// in that transaction runs as.
type Audience string

const (
	AudienceInternalWeb      Audience = "internal-web"
	AudienceInternalStudio   Audience = "internal-studio"
	AudienceExternalPortal   Audience = "external-portal"
	AudienceBackgroundWorker Audience = "background-worker"
	AudienceTrustedService   Audience = "trusted-service"
)

// Audiences lists every known audience value.
var Audiences = []Audience{
	AudienceInternalWeb,
	AudienceInternalStudio,
	AudienceExternalPortal,
	AudienceBackgroundWorker,
	AudienceTrustedService,
}

func (a Audience) Valid() bool {
	switch a {
	case AudienceInternalWeb, AudienceInternalStudio, AudienceExternalPortal,
		AudienceBackgroundWorker, AudienceTrustedService:
		return true
	}
	return false
}

func (a Audience) String() string {
	return string(a)
}

// ParseAudience converts a claim string into an Audience. Values outside the
// closed enumeration are rejected; there is no permissive fallback.
func ParseAudience(s string) (Audience, error) {
	a := Audience(s)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAudience, s)
	}
	return a, nil
}
