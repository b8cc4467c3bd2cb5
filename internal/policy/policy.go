// Package policy centralizes role-based authorization decisions in a single
// capability table instead of per-handler role checks.
package policy

import (
	"errors"

	"github.com/tailorent/tailorent-api/internal/domain"
)

// ErrForbidden is returned when a role lacks the capability for an action.
var ErrForbidden = errors.New("permission denied")

// Capability names an action a role may or may not perform.
type Capability string

// Known capabilities.
const (
	CapabilityBookService    Capability = "book_service"
	CapabilityDecideBooking  Capability = "decide_booking"
	CapabilityListProducts   Capability = "list_products"
	CapabilityOfferServices  Capability = "offer_services"
	CapabilityPostStyleFeed  Capability = "post_style_feed"
	CapabilityViewAdminPanel Capability = "view_admin_panel"
)

// capabilities maps each capability to the roles allowed to exercise it.
var capabilities = map[Capability]map[domain.Role]bool{
	CapabilityBookService: {
		domain.RoleCustomer: true,
	},
	CapabilityDecideBooking: {
		domain.RoleTailor:          true,
		domain.RoleFashionDesigner: true,
	},
	CapabilityListProducts: {
		domain.RoleVendor: true,
	},
	CapabilityOfferServices: {
		domain.RoleTailor:          true,
		domain.RoleFashionDesigner: true,
	},
	CapabilityPostStyleFeed: {
		domain.RoleCustomer:        true,
		domain.RoleTailor:          true,
		domain.RoleFashionDesigner: true,
		domain.RoleVendor:          true,
		domain.RoleAdmin:           true,
	},
	CapabilityViewAdminPanel: {
		domain.RoleAdmin: true,
	},
}

// Allowed reports whether the role may exercise the capability.
func Allowed(role domain.Role, capability Capability) bool {
	return capabilities[capability][role]
}

// Check returns ErrForbidden when the role may not exercise the capability.
func Check(role domain.Role, capability Capability) error {
	if !Allowed(role, capability) {
		return ErrForbidden
	}
	return nil
}
