package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks cfg for internal consistency beyond what struct tags can
// express alone: at least one protocol instance configured, BGP neighbor
// fields present when BGP is enabled, and SR label ranges when segment
// routing is enabled.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if len(cfg.OSPF) == 0 && len(cfg.ISIS) == 0 && !cfg.BGP.Enabled {
		return fmt.Errorf("no protocol instances configured: enable at least one of ospf, isis, bgp")
	}

	if err := validateOSPFInstances(cfg.OSPF); err != nil {
		return err
	}
	if err := validateISISInstances(cfg.ISIS); err != nil {
		return err
	}
	if err := validateBGP(&cfg.BGP); err != nil {
		return err
	}
	if err := validateSegmentRouting(&cfg.SegmentRouting); err != nil {
		return err
	}

	return nil
}

func validateOSPFInstances(instances []OSPFInstanceConfig) error {
	seen := make(map[string]bool, len(instances))
	for _, inst := range instances {
		if seen[inst.Name] {
			return fmt.Errorf("duplicate ospf instance name %q", inst.Name)
		}
		seen[inst.Name] = true

		if len(inst.Areas) == 0 {
			return fmt.Errorf("ospf instance %q has no areas configured", inst.Name)
		}
		for _, area := range inst.Areas {
			if len(area.Interfaces) == 0 {
				return fmt.Errorf("ospf instance %q area %q has no interfaces configured", inst.Name, area.ID)
			}
			for _, iface := range area.Interfaces {
				if iface.DeadInterval <= iface.HelloInterval {
					return fmt.Errorf("ospf instance %q interface %q: dead_interval must exceed hello_interval", inst.Name, iface.Name)
				}
			}
		}
	}
	return nil
}

func validateISISInstances(instances []ISISInstanceConfig) error {
	seen := make(map[string]bool, len(instances))
	for _, inst := range instances {
		if seen[inst.Name] {
			return fmt.Errorf("duplicate isis instance name %q", inst.Name)
		}
		seen[inst.Name] = true

		if len(inst.Interfaces) == 0 {
			return fmt.Errorf("isis instance %q has no interfaces configured", inst.Name)
		}
		for _, iface := range inst.Interfaces {
			if iface.HoldTime <= iface.HelloInterval {
				return fmt.Errorf("isis instance %q interface %q: hold_time must exceed hello_interval", inst.Name, iface.Name)
			}
		}
	}
	return nil
}

func validateBGP(cfg *BGPConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.LocalAS == 0 {
		return fmt.Errorf("bgp.local_as is required when bgp is enabled")
	}
	seen := make(map[string]bool, len(cfg.Neighbors))
	for _, n := range cfg.Neighbors {
		if seen[n.Address] {
			return fmt.Errorf("duplicate bgp neighbor %q", n.Address)
		}
		seen[n.Address] = true
		if n.PeerAS == 0 {
			return fmt.Errorf("bgp neighbor %q: peer_as is required", n.Address)
		}
	}
	return nil
}

func validateSegmentRouting(cfg *SegmentRoutingConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.GlobalBlock.Start == 0 || cfg.GlobalBlock.End <= cfg.GlobalBlock.Start {
		return fmt.Errorf("segment_routing.global_block must have end > start")
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed validation: %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("configuration validation failed: %v", msgs)
}
