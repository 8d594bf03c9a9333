package config

import (
	"errors"
	"fmt"
)

// Controller types understood by the controller manager
const (
	ControllerREST    = "rest"
	ControllerGRPC    = "grpc"
	ControllerGateway = "gateway"
)

// Validate checks a loaded configuration for problems that would otherwise
// surface later at startup. Observer coordinates are deliberately not range
// checked.
func Validate(cfg *ConfigData) error {
	var errs []error

	seen := make(map[string]bool)
	for i, o := range cfg.Observers {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("observer %d has no name", i))
			continue
		}
		if seen[o.Name] {
			errs = append(errs, fmt.Errorf("duplicate observer name %q", o.Name))
		}
		seen[o.Name] = true

		if _, err := o.Observer(); err != nil {
			errs = append(errs, err)
		}
	}

	for i, c := range cfg.Controllers {
		switch c.Type {
		case ControllerREST:
			if c.RESTServer == nil {
				errs = append(errs, fmt.Errorf("controller %d: rest controller has no rest section", i))
			}
		case ControllerGRPC:
			if c.GRPC == nil {
				errs = append(errs, fmt.Errorf("controller %d: grpc controller has no grpc section", i))
			}
		case ControllerGateway:
			if c.Gateway == nil {
				errs = append(errs, fmt.Errorf("controller %d: gateway controller has no gateway section", i))
			}
		default:
			errs = append(errs, fmt.Errorf("controller %d: unknown controller type %q", i, c.Type))
		}
	}

	if _, err := cfg.Almanac.Interval(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
