package tower

import (
	"fmt"
	"net/url"
	"strings"

	"dropoff/internal/pkg/errs"
	"dropoff/internal/pkg/guard"
)

var ErrControlEndpointIsNotConstructed = errs.NewValueIsRequiredError("control endpoint must be created via NewControlEndpoint")

// ControlEndpoint is the base URL of a tower's remote controller. Values
// stored without a scheme are assumed to be served over https.
type ControlEndpoint struct {
	base  string
	guard guard.ConstructorGuard
}

func NewControlEndpoint(raw string) (ControlEndpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ControlEndpoint{}, errs.NewValueIsRequiredError("control_key")
	}
	if !strings.HasPrefix(strings.ToLower(raw), "http") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ControlEndpoint{}, errs.NewValueIsInvalidErrorWithCause("control_key", err)
	}
	if u.Host == "" {
		return ControlEndpoint{}, errs.NewValueIsInvalidErrorWithCause("control_key", fmt.Errorf("%q has no host", raw))
	}
	return ControlEndpoint{base: strings.TrimRight(raw, "/"), guard: guard.NewConstructorGuard()}, nil
}

// URL joins the endpoint with a controller operation path such as "/status".
func (e ControlEndpoint) URL(path string) string {
	return e.base + "/" + strings.TrimLeft(path, "/")
}

func (e ControlEndpoint) String() string {
	return e.base
}

func (e ControlEndpoint) Validate() error {
	return e.guard.Validate(ErrControlEndpointIsNotConstructed)
}
