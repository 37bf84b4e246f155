package services

import (
	"ceylon-compass-server/models"
	"ceylon-compass-server/types"
)

// Capability is a permission checked against the acting user.
type Capability string

const (
	CapModerate        Capability = "moderate"
	CapManageContent   Capability = "manage_content"
	CapManageUsers     Capability = "manage_users"
	CapManageLocations Capability = "manage_locations"
	CapReadMessages    Capability = "read_messages"
	CapSendEmail       Capability = "send_email"
)

var roleCapabilities = map[models.UserRole]map[Capability]bool{
	models.RoleAdmin: {
		CapModerate:        true,
		CapManageContent:   true,
		CapManageUsers:     true,
		CapManageLocations: true,
		CapReadMessages:    true,
		CapSendEmail:       true,
	},
	models.RoleUser: {},
}

// Can is the single authorization check used by middleware and services.
func Can(user *models.User, capability Capability) bool {
	if user == nil {
		return false
	}
	return roleCapabilities[user.Role][capability]
}

// Authorize returns a Forbidden error carrying message when user lacks capability.
func Authorize(user *models.User, capability Capability, message string) error {
	if user == nil {
		return types.Unauthenticated("No authentication token, access denied")
	}
	if !Can(user, capability) {
		return types.Forbidden(message)
	}
	return nil
}

// CanModify reports whether user may edit or delete something owned by ownerID.
func CanModify(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID || Can(user, CapManageContent)
}
