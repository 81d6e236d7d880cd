package toolchain

import (
	"os"
	"strings"
	"sync"
)

// APIEndpointEnvVar selects the remote catalog endpoint. Unset means the
// production endpoint.
const APIEndpointEnvVar = "SCORECARD_API_ENDPOINT"

// defaultEndpoint is the endpoint identity used when the environment does
// not specify one.
const defaultEndpoint = "production"

// APIEndpoint returns the configured catalog endpoint identity.
func APIEndpoint() string {
	if endpoint := os.Getenv(APIEndpointEnvVar); endpoint != "" {
		return endpoint
	}
	return defaultEndpoint
}

// ClientState records facts about the configured endpoint that are needed
// repeatedly during a run.
type ClientState struct {
	// OnStaging is true when the endpoint points at staging rather than
	// production. Useful for diverging logic between PR CI and nightly runs.
	OnStaging bool
}

var (
	clientState     ClientState
	clientStateOnce sync.Once
)

// GetClientState returns the process-wide client state, computing it on
// first use.
func GetClientState() ClientState {
	clientStateOnce.Do(func() {
		clientState = ClientState{
			OnStaging: strings.Contains(APIEndpoint(), "staging"),
		}
	})
	return clientState
}

// ResetClientState clears the cached client state. Intended for test
// isolation.
func ResetClientState() {
	clientStateOnce = sync.Once{}
	clientState = ClientState{}
}
