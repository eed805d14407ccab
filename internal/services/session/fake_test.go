package session

import (
	"fmt"
	"sync"
	"sync/atomic"

	"spectre/internal/domain/types"
)

// fakeAlgorithm renders results from the key material so tests can tell which
// identity produced them. Derivations block on the configured gates.
type fakeAlgorithm struct {
	mu       sync.Mutex
	keyGates map[string]chan struct{}

	siteEntered chan string
	siteGate    chan struct{}

	keyErr    error
	siteErr   error
	siteCalls atomic.Int32
}

func newFakeAlgorithm() *fakeAlgorithm {
	return &fakeAlgorithm{keyGates: make(map[string]chan struct{})}
}

// gateKey makes user-key derivations for secret block until the returned
// channel is closed.
func (a *fakeAlgorithm) gateKey(secret string) chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	gate := make(chan struct{})
	a.keyGates[secret] = gate
	return gate
}

func (a *fakeAlgorithm) UserKey(
	userName string,
	userSecret []byte,
	version types.AlgorithmVersion,
) (*types.UserKey, error) {
	secret := string(userSecret)
	a.mu.Lock()
	gate := a.keyGates[secret]
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if a.keyErr != nil {
		return nil, a.keyErr
	}
	return types.NewUserKey([]byte(userName+":"+secret), version), nil
}

func (a *fakeAlgorithm) SiteResult(key *types.UserKey, params types.SiteParams) (string, error) {
	a.siteCalls.Add(1)
	if a.siteEntered != nil {
		a.siteEntered <- params.SiteName
	}
	if a.siteGate != nil {
		<-a.siteGate
	}
	if a.siteErr != nil {
		return "", a.siteErr
	}
	var out string
	ok := key.Use(func(material []byte) {
		out = fmt.Sprintf("%s@%s#%d/%s", material, params.SiteName, params.Counter, params.ResultType)
	})
	if !ok {
		return "", types.Fail(types.ErrMissingUserKey, types.CauseUserKey, "Missing user key.")
	}
	if params.Context != nil {
		out += "|" + *params.Context
	}
	return out, nil
}

func (a *fakeAlgorithm) Identicon(userName string, _ []byte) (types.Identicon, error) {
	return types.Identicon{
		LeftArm:   types.IdenticonLeftArms[len(userName)%len(types.IdenticonLeftArms)],
		Body:      types.IdenticonBodies[0],
		RightArm:  types.IdenticonRightArms[0],
		Accessory: types.IdenticonAccessories[0],
	}, nil
}
