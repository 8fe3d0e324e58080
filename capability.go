package cdi

import "fmt"

// Capability names one part of the standard bean manager contract.
type Capability int

const (
	// CapabilityLookup covers type and type+qualifier lookups.
	CapabilityLookup Capability = iota
	// CapabilityQualifiers covers qualifier equivalence and hashing.
	CapabilityQualifiers
	// CapabilityInstance covers Instance handles.
	CapabilityInstance
	// CapabilityScopes covers scope classification and contexts.
	CapabilityScopes
	// CapabilityStereotypes covers stereotype classification.
	CapabilityStereotypes
	// CapabilityInterceptors covers interceptor bindings and resolution.
	CapabilityInterceptors
	// CapabilityDecorators covers decorator resolution.
	CapabilityDecorators
	// CapabilityEvents covers event firing and observer resolution.
	CapabilityEvents
	// CapabilityCreationalContext covers creational context push/release.
	CapabilityCreationalContext
	// CapabilityBeanAuthoring covers the SPI used to define new beans.
	CapabilityBeanAuthoring
	// CapabilityPassivation covers passivation capable beans.
	CapabilityPassivation
	// CapabilityExpressionLanguage covers expression language integration.
	CapabilityExpressionLanguage
)

// Capabilities lists every Capability in declaration order.
var Capabilities = []Capability{
	CapabilityLookup,
	CapabilityQualifiers,
	CapabilityInstance,
	CapabilityScopes,
	CapabilityStereotypes,
	CapabilityInterceptors,
	CapabilityDecorators,
	CapabilityEvents,
	CapabilityCreationalContext,
	CapabilityBeanAuthoring,
	CapabilityPassivation,
	CapabilityExpressionLanguage,
}

// String returns the string representation of the Capability.
func (c Capability) String() string {
	switch c {
	case CapabilityLookup:
		return "Lookup"
	case CapabilityQualifiers:
		return "Qualifiers"
	case CapabilityInstance:
		return "Instance"
	case CapabilityScopes:
		return "Scopes"
	case CapabilityStereotypes:
		return "Stereotypes"
	case CapabilityInterceptors:
		return "Interceptors"
	case CapabilityDecorators:
		return "Decorators"
	case CapabilityEvents:
		return "Events"
	case CapabilityCreationalContext:
		return "CreationalContext"
	case CapabilityBeanAuthoring:
		return "BeanAuthoring"
	case CapabilityPassivation:
		return "Passivation"
	case CapabilityExpressionLanguage:
		return "ExpressionLanguage"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Support describes how the bridge handles a Capability.
type Support int

const (
	// Unsupported capabilities fail with NotImplementedError.
	Unsupported Support = iota
	// Inert capabilities accept calls and return empty results.
	Inert
	// Supported capabilities map onto registry lookups.
	Supported
)

// String returns the string representation of the Support level.
func (s Support) String() string {
	switch s {
	case Unsupported:
		return "Unsupported"
	case Inert:
		return "Inert"
	case Supported:
		return "Supported"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

var capabilitySupport = map[Capability]Support{
	CapabilityLookup:             Supported,
	CapabilityQualifiers:         Supported,
	CapabilityInstance:           Supported,
	CapabilityScopes:             Inert,
	CapabilityStereotypes:        Inert,
	CapabilityInterceptors:       Inert,
	CapabilityDecorators:         Inert,
	CapabilityEvents:             Inert,
	CapabilityCreationalContext:  Inert,
	CapabilityBeanAuthoring:      Unsupported,
	CapabilityPassivation:        Unsupported,
	CapabilityExpressionLanguage: Unsupported,
}
